package game

import (
	"fmt"

	"github.com/firesync/firesync/internal/models"
)

// Score computes the balance score for one weapon:
//
//	(damage * fireRate + magazine * range) / (falloff + recoil)
//
// Pure and deterministic; errors when the denominator is zero.
func Score(w models.WeaponRecord) (float64, error) {
	den := float64(w.Falloff) + w.Recoil
	if den == 0 {
		return 0, fmt.Errorf("weapon %q: falloff+recoil is zero", w.Name)
	}
	return (float64(w.Damage)*w.FireRate + float64(w.Magazine)*w.Range) / den, nil
}
