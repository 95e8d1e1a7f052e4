package version

import "fmt"

// заполняются через -ldflags "-X github.com/haxsysgit/coursework-backend/internal/version.version=..."
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func Version() string { return version }

// Info возвращает версию, коммит и дату сборки
func Info() (v, c, d string) { return version, commit, date }

func String() string {
	return fmt.Sprintf("version=%s commit=%s date=%s", version, commit, date)
}
