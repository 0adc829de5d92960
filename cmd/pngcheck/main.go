// pngcheck validates PNG files for correctness and spec compliance.
//
// Usage:
//
//	pngcheck [-q|--quiet] [-s|--strict] <filename> [<filename> ...]
//
// Options:
//
//	-q, --quiet   Only output errors. Exit code indicates pass/fail.
//	-s, --strict  Promote every warning to a fatal error.
//	-h, --help    Show this help message.
//	--version     Show version information.
//
// Exit codes:
//
//	0: All files valid
//	1: One or more files invalid
//	2: Error (file not found, etc.)
package main

import (
	"fmt"
	"os"
	"strings"

	png "github.com/AnturK/png-codec"
)

const version = "1.0.0"

// ValidationIssue represents a single validation problem found in a file.
type ValidationIssue struct {
	Severity string // "error" or "warning"
	Message  string
}

// ValidationResult contains all validation results for a file.
type ValidationResult struct {
	Filename string
	Issues   []ValidationIssue
	Checks   []string
}

// IsValid returns true if there are no errors (warnings are ok).
func (r *ValidationResult) IsValid() bool {
	for _, issue := range r.Issues {
		if issue.Severity == "error" {
			return false
		}
	}
	return true
}

// HasErrors returns true if there are any error-level issues.
func (r *ValidationResult) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}

func main() {
	quiet := false
	strict := false
	files := []string{}

	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "-q", "--quiet":
			quiet = true
		case "-s", "--strict":
			strict = true
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("pngcheck version %s\n", version)
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input files specified")
		printUsage()
		os.Exit(2)
	}

	validCount := 0
	errorOccurred := false

	for _, filename := range files {
		result, err := validateFile(filename, strict)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: error: %v\n", filename, err)
			errorOccurred = true
			continue
		}

		if result.IsValid() {
			validCount++
		}

		if !quiet {
			printResult(result)
		} else if result.HasErrors() {
			for _, issue := range result.Issues {
				if issue.Severity == "error" {
					fmt.Fprintf(os.Stderr, "%s: %s\n", filename, issue.Message)
				}
			}
		}
	}

	if len(files) > 1 && !quiet {
		fmt.Printf("\nSummary: %d of %d files valid\n", validCount, len(files))
	}

	if errorOccurred {
		os.Exit(2)
	}
	if validCount < len(files) {
		os.Exit(1)
	}
	os.Exit(0)
}

func printUsage() {
	fmt.Println(`Usage: pngcheck [options] <filename> [<filename> ...]

Validate PNG files for correctness and spec compliance.

Options:
  -q, --quiet    Only output errors. Exit code indicates pass/fail.
  -s, --strict   Promote every warning to a fatal error.
  -h, --help     Show this help message.
  --version      Show version information.

Exit codes:
  0: All files valid
  1: One or more files invalid
  2: Error (file not found, permission denied, etc.)

Examples:
  pngcheck image.png                  Validate a single file
  pngcheck -q *.png                   Validate all PNGs silently
  pngcheck -s image.png               Validate with strict mode`)
}

func printResult(result *ValidationResult) {
	if result.IsValid() {
		fmt.Printf("%s: OK\n", result.Filename)
	} else {
		fmt.Printf("%s: INVALID\n", result.Filename)
	}
	for _, issue := range result.Issues {
		fmt.Printf("  [%s] %s\n", strings.ToUpper(issue.Severity), issue.Message)
	}
	if len(result.Checks) > 0 {
		fmt.Printf("  Checks performed: %s\n", strings.Join(result.Checks, ", "))
	}
}

// validateFile reads and decodes filename, translating Decode's warnings
// and fatal error into a ValidationResult.
func validateFile(filename string, strict bool) (*ValidationResult, error) {
	result := &ValidationResult{Filename: filename}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if len(data) < 8 {
		result.addError("file too small to be a valid PNG file")
		result.Checks = append(result.Checks, "signature")
		return result, nil
	}

	result.Checks = append(result.Checks, "signature", "chunk framing", "ordering", "IDAT inflate", "pixel decode")

	res, decErr := png.Decode(data, png.DecodeOptions{StrictMode: strict})
	if decErr != nil {
		if de, ok := decErr.(*png.DecodeError); ok {
			result.addErrorf("%s: %s", de.Code, de.Error())
			for _, w := range de.Warnings {
				result.addWarningf("%s: %s", w.Code, w.String())
			}
			return result, nil
		}
		return nil, decErr
	}

	for _, w := range res.Warnings {
		result.addWarningf("%s: %s", w.Code, w.String())
	}
	if len(res.Info) > 0 {
		result.Checks = append(result.Checks, "ancillary chunks")
	}

	width, height := res.Image().Bounds()
	result.Checks = append(result.Checks, fmt.Sprintf("%dx%d", width, height))

	return result, nil
}

func (r *ValidationResult) addError(msg string) {
	r.Issues = append(r.Issues, ValidationIssue{Severity: "error", Message: msg})
}

func (r *ValidationResult) addWarning(msg string) {
	r.Issues = append(r.Issues, ValidationIssue{Severity: "warning", Message: msg})
}

func (r *ValidationResult) addErrorf(format string, args ...interface{}) {
	r.addError(fmt.Sprintf(format, args...))
}

func (r *ValidationResult) addWarningf(format string, args ...interface{}) {
	r.addWarning(fmt.Sprintf(format, args...))
}
