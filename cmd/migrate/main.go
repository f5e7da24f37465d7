package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"SecureDash/internal/repo"
	"SecureDash/internal/service"
)

// Утилита перешифровки слота со старых credentials на новые.
// Запускается при остановленном сервере: блокировки против параллельно
// работающего процесса нет, старый блоб сохраняется в .backup.
func main() {
	var (
		oldPassword = flag.String("old-password", "", "старый пароль")
		oldOTP      = flag.String("old-otp", "", "старый OTP")
		newPassword = flag.String("new-password", "", "новый пароль")
		newOTP      = flag.String("new-otp", "", "новый OTP")
		dataDir     = flag.String("data-dir", "secure_data", "каталог зашифрованных данных")
		yes         = flag.Bool("yes", false, "выполнить миграцию (без флага — только проверка)")
	)
	flag.Parse()

	if *oldPassword == "" || *oldOTP == "" || *newPassword == "" || *newOTP == "" {
		fmt.Fprintln(os.Stderr, "usage: migrate -old-password ... -old-otp ... -new-password ... -new-otp ... [-data-dir ...] [-yes]")
		os.Exit(2)
	}

	blobs := repo.NewBlobRepository(*dataDir)
	vault := service.NewVault(blobs)

	oldCred := service.Credential(*oldPassword, *oldOTP)
	newCred := service.Credential(*newPassword, *newOTP)
	oldSlot := service.SlotID(oldCred)

	blob, found, err := blobs.Load(oldSlot)
	if err != nil {
		fatal("read old slot: %v", err)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "no data file for old credentials (slot %s)\n", oldSlot)
		slots, err := blobs.List()
		if err == nil && len(slots) > 0 {
			fmt.Fprintln(os.Stderr, "existing slots:")
			for _, s := range slots {
				fmt.Fprintf(os.Stderr, "  - %s.enc\n", s)
			}
		}
		os.Exit(1)
	}

	records, err := vault.Open(oldCred, blob)
	if err != nil {
		fatal("decrypt failed: check the old password/OTP")
	}
	fmt.Printf("decrypted %d record(s) from slot %s\n", len(records), oldSlot)

	if !*yes {
		fmt.Printf("dry run: would re-encrypt into slot %s; re-run with -yes to migrate\n", service.SlotID(newCred))
		return
	}

	// бэкап старого блоба до любой записи
	backup := filepath.Join(*dataDir, oldSlot+".enc.backup")
	if err := os.WriteFile(backup, blob, 0o600); err != nil {
		fatal("write backup: %v", err)
	}
	fmt.Printf("backed up old blob to %s\n", backup)

	if _, err := vault.Seal(newCred, records); err != nil {
		fatal("re-encrypt: %v", err)
	}
	fmt.Printf("migrated %d record(s) to slot %s\n", len(records), service.SlotID(newCred))
	fmt.Println("restart the server and login with the NEW credentials")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
