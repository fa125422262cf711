package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the module root so relative paths (logs/, *.db) land in one place during tests
	//
	//   in some_test.go,
	//   import (
	//     _ "liyu1981.xyz/weather-monitor-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
