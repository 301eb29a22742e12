package main

import (
	"fmt"
	"io"

	"github.com/firesync/firesync/internal/models"
)

const tableRule = "|------------|--------|------|---------------|-------------|--------------|--------------|------|--------|"

// renderCatalog prints the full weapon table with each balance score
// divided by 100 to keep the column readable.
func renderCatalog(w io.Writer, c *models.Catalog) {
	fmt.Fprintln(w, tableRule)
	fmt.Fprintln(w, "|Weapon Name |Price($)|Damage|Fire Rate (RPM)|Magazine Size|Damage Falloff|Accurate Range|Recoil|Balance |")
	fmt.Fprintln(w, tableRule)
	for i, rec := range c.Records {
		fmt.Fprintf(w, "|%-12s|%8d|%6d|%15.2f|%13d|%14d|%14.2f|%6.1f|%8.3f|\n",
			rec.Name, rec.Price, rec.Damage, rec.FireRate, rec.Magazine,
			rec.Falloff, rec.Range, rec.Recoil, c.Scores[i]/100)
	}
	fmt.Fprintln(w, tableRule)
}
