package scheduler

import (
	"context"
	"log"
	"time"

	"questku_backend/internals/features/users/auth/service"
)

// BlacklistCleanupJob menghapus token_blacklist yang exp-nya sudah lewat.
// Dipasang di cron scheduler quest (configs.SchedulerSpecs.TokenCleanup).
func BlacklistCleanupJob(s *service.AuthService, timeout time.Duration) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		log.Println("[CLEANUP] Menjalankan pembersihan token_blacklist...")
		n, err := s.PurgeBlacklist(ctx)
		if err != nil {
			log.Printf("[CLEANUP ERROR] Gagal hapus token: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[CLEANUP] %d token kadaluarsa dihapus", n)
		} else {
			log.Println("[CLEANUP] Tidak ada token yang memenuhi syarat dihapus")
		}
	}
}
