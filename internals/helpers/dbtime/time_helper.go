// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// Nama locals yang bisa di-set middleware untuk override zona waktu per request.
const LocUserLoc = "user_loc"

const (
	DateLayout        = "2006-01-02"
	DisplayDateLayout = "02/01/2006"
)

var appLoc = time.UTC

// SetAppLocation dipanggil sekali saat boot (setelah configs.LoadEnv).
func SetAppLocation(loc *time.Location) {
	if loc != nil {
		appLoc = loc
	}
}

func AppLocation() *time.Location { return appLoc }

// GetLocation: prioritas Locals("user_loc"), fallback zona aplikasi.
func GetLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocUserLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return appLoc
}

// DateOf membuang jam dari t (dilihat di loc) dan mengembalikan tengah malam UTC
// untuk tanggal kalender yang sama. Semua kolom DATE disimpan dalam bentuk ini.
func DateOf(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = appLoc
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today = tanggal hari ini di zona aplikasi.
func Today(now time.Time) time.Time {
	return DateOf(now, appLoc)
}

// Normalize untuk nilai yang sudah berupa tanggal (misal hasil parse atau dari DB).
func Normalize(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToDate(t time.Time) datatypes.Date { return datatypes.Date(Normalize(t)) }

func FromDate(d datatypes.Date) time.Time { return Normalize(time.Time(d)) }

// ParseDate menerima "YYYY-MM-DD" (atau RFC3339, diambil tanggalnya).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Normalize(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return DateOf(t, appLoc), nil
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatDisplay dipakai di teks notifikasi (dd/MM/yyyy).
func FormatDisplay(t time.Time) string { return t.Format(DisplayDateLayout) }

// ISOWeekKey = "YYYY-Www" memakai minggu ISO-8601 (Senin awal minggu,
// minggu 1 memuat Kamis pertama di tahun tsb).
func ISOWeekKey(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", y, w)
}

func SameISOWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// DaysBetween menghitung selisih hari kalender (to - from).
func DaysBetween(from, to time.Time) int {
	return int(Normalize(to).Sub(Normalize(from)).Hours() / 24)
}

// WeekBounds mengembalikan Senin dan Minggu dari minggu ISO yang memuat t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	d := Normalize(t)
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}
