// staticlint implements set of static checks for the shortener.
//
// Following checks are included:
//
// 1. Correctness checks from golang.org/x/tools/go/analysis/passes
//
// 2. All SA checks from https://staticcheck.io/docs/checks/
//
// 3. ST1019 check from https://staticcheck.io/docs/checks/#ST1019
//
// 4. Check wrapping errors https://github.com/fatih/errwrap
//
// 5. Check for calling os.Exit in main func of main package
//
// Example:
//
//	staticlint ./...
//
// Run only exitinmain:
//
//	staticlint -exitinmain ./...
package main
