// Package leveling: perhitungan level dari total XP.
//
//	level = floor(sqrt(xp / 100)) + 1
//
// Dihitung dengan integer (pembagian bulat lalu akar bulat) supaya tidak ada
// pembulatan float untuk XP besar. Hasilnya identik dengan rumus real untuk xp >= 0.
package leveling

import "math/bits"

const XPPerLevelUnit = 100

// LevelFor selalu >= 1 dan monoton tidak turun. XP negatif diperlakukan sebagai 0.
func LevelFor(xp int64) int {
	if xp < XPPerLevelUnit {
		return 1
	}
	return int(isqrt(uint64(xp/XPPerLevelUnit))) + 1
}

// MinXPForLevel = XP minimum untuk mencapai level tsb (100 * (level-1)^2).
func MinXPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	n := int64(level - 1)
	return XPPerLevelUnit * n * n
}

type Progress struct {
	Level         int   `json:"level"`
	CurrentXP     int64 `json:"current_xp"`
	LevelFloorXP  int64 `json:"level_floor_xp"`
	NextLevelXP   int64 `json:"next_level_xp"`
	XPIntoLevel   int64 `json:"xp_into_level"`
	XPToNextLevel int64 `json:"xp_to_next_level"`
	PercentToNext int   `json:"percent_to_next"`
}

// NextLevelProgress dipakai di profil/dashboard.
func NextLevelProgress(xp int64) Progress {
	if xp < 0 {
		xp = 0
	}
	lvl := LevelFor(xp)
	floor := MinXPForLevel(lvl)
	next := MinXPForLevel(lvl + 1)
	span := next - floor
	into := xp - floor
	pct := 0
	if span > 0 {
		pct = int(into * 100 / span)
	}
	return Progress{
		Level:         lvl,
		CurrentXP:     xp,
		LevelFloorXP:  floor,
		NextLevelXP:   next,
		XPIntoLevel:   into,
		XPToNextLevel: next - xp,
		PercentToNext: pct,
	}
}

// isqrt: floor(sqrt(n)) via Newton, mulai dari tebakan di atas akar.
func isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}
