package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kegliz/qivm/backend"
	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/diag"
	"github.com/kegliz/qivm/internal/app"
	"github.com/kegliz/qivm/pass"
	"github.com/kegliz/qivm/preprocess"

	_ "github.com/kegliz/qivm/backend/itsu"
	_ "github.com/kegliz/qivm/backend/qsim"
)

type buildFlags struct {
	file                string
	output              string
	generateInclude     string
	keepIntermediateSrc bool
	quiet               bool
	libPath             string
	optLevel            int
	cc                  string
	ccFlags             string
}

func newBuildCmd() *cobra.Command {
	f := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile an embedded @stateq block and splice the lowered result back into its host file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.file, "file", "i", "", "the source file to compile (required)")
	flags.StringVarP(&f.output, "output", "o", "", "the output file")
	flags.StringVarP(&f.generateInclude, "inc", "n", "", "the host-language interface file to generate")
	flags.BoolVarP(&f.keepIntermediateSrc, "keep-intermediate-src", "k", false, "keep generated host-language source file")
	flags.BoolVarP(&f.quiet, "quiet", "q", true, "suspend host-language compiler warnings")
	flags.StringVarP(&f.libPath, "qivm-lib-path", "l", "", "qivm library path")
	flags.IntVarP(&f.optLevel, "opt-level", "O", 2, "optimization level")
	flags.StringVarP(&f.cc, "cc", "c", "gcc", "C compiler")
	flags.StringVar(&f.ccFlags, "cc-flags", "", "C compiler flags")

	cmd.MarkFlagRequired("file")
	return cmd
}

func runBuild(f *buildFlags) error {
	var bag diag.Bag

	source, err := os.ReadFile(f.file)
	if err != nil {
		bag.Errorf(f.file, 0, 0, "unable to read file: %v", err)
		return reportAndFail(&bag)
	}

	ext := strings.TrimPrefix(filepath.Ext(f.file), ".")
	hostLang, ok := preprocess.HostLanguageFromExtension(ext)
	if !ok {
		bag.Errorf(f.file, 0, 0, "unsupported source file extension: %s", ext)
		return reportAndFail(&bag)
	}

	embedded, err := preprocess.New(hostLang, string(source))
	if err != nil {
		bag.Errorf(f.file, 0, 0, "%v", err)
		return reportAndFail(&bag)
	}

	var req app.CompileRequest
	if err := json.Unmarshal([]byte(embedded.EmbeddedSource()), &req); err != nil {
		bag.Errorf(f.file, 0, 0, "malformed @stateq block: %v", err)
		return reportAndFail(&bag)
	}
	if f.keepIntermediateSrc {
		intermediatePath := baseName(f.file) + ".qc"
		if err := os.WriteFile(intermediatePath, []byte(embedded.EmbeddedSource()), 0o644); err != nil {
			bag.Warnf(f.file, 0, 0, "unable to keep intermediate source: %v", err)
		}
	}

	if req.Qubits <= 0 {
		bag.Errorf(f.file, 0, 0, "qubits must be positive")
		return reportAndFail(&bag)
	}
	if req.Backend == "" {
		req.Backend = "qsim"
	}

	dev, err := backend.Create(req.Backend)
	if err != nil {
		bag.Errorf(f.file, 0, 0, "unknown backend %q", req.Backend)
		return reportAndFail(&bag)
	}

	circ, measureTarget, err := app.BuildCircuitFromRequest(&req)
	if err != nil {
		bag.Errorf(f.file, 0, 0, "building circuit: %v", err)
		return reportAndFail(&bag)
	}

	lowered, err := pass.Run(circ, pass.Default(dev))
	if err != nil {
		bag.Errorf(f.file, 0, 0, "lowering failed: %v", err)
		return reportAndFail(&bag)
	}

	ins, err := bytecode.FromCircuit(lowered, uint32(req.Qubits), measureTarget)
	if err != nil {
		bag.Errorf(f.file, 0, 0, "bytecode encoding failed: %v", err)
		return reportAndFail(&bag)
	}
	code := bytecode.Encode(ins)

	name := f.output
	if name == "" {
		name = baseName(f.file)
	}

	generated := renderByteArrayLiteral(hostLang, name, code)
	fullSource := embedded.ReplaceEmbeddedSource(generated)

	targetPath := name + ".target." + hostLang.Extension()
	if err := os.WriteFile(targetPath, []byte(fullSource), 0o644); err != nil {
		bag.Errorf(f.file, 0, 0, "unable to write target source file %s: %v", targetPath, err)
		return reportAndFail(&bag)
	}

	if f.generateInclude != "" {
		if err := os.WriteFile(f.generateInclude, []byte(renderInterface(hostLang, name)), 0o644); err != nil {
			bag.Warnf(f.file, 0, 0, "unable to write include file: %v", err)
		}
	}

	if hostLang == preprocess.C || hostLang == preprocess.Cpp {
		if err := linkWithCCompiler(f, targetPath, name); err != nil {
			bag.Warnf(f.file, 0, 0, "%v", err)
		}
	} else {
		bag.Add(diag.Diagnostic{Kind: diag.Note, Message: "skipping native link step for " + hostLangName(hostLang) + " host sources"})
	}

	reportDiagnostics(&bag, f.quiet)
	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hostLangName(h preprocess.HostLanguage) string {
	switch h {
	case preprocess.C:
		return "C"
	case preprocess.Cpp:
		return "C++"
	case preprocess.Java:
		return "Java"
	case preprocess.Rust:
		return "Rust"
	case preprocess.Python:
		return "Python"
	default:
		return "unknown"
	}
}

// renderByteArrayLiteral formats compiled bytecode as a host-language
// constant so ReplaceEmbeddedSource can splice it back where the
// @stateq block used to live.
func renderByteArrayLiteral(h preprocess.HostLanguage, symbol string, code bytecode.ByteCode) string {
	bytes := make([]string, len(code))
	for i, b := range code {
		bytes[i] = "0x" + strconv.FormatUint(uint64(b), 16)
	}
	joined := strings.Join(bytes, ", ")
	name := sanitizeSymbol(symbol) + "_bytecode"

	switch h {
	case preprocess.C, preprocess.Cpp:
		return fmt.Sprintf("static const unsigned char %s[] = { %s };\nstatic const unsigned long %s_len = %d;\n", name, joined, name, len(code))
	case preprocess.Rust:
		return fmt.Sprintf("pub static %s: [u8; %d] = [%s];\n", strings.ToUpper(name), len(code), joined)
	case preprocess.Java:
		return fmt.Sprintf("static final byte[] %s = { %s };\n", name, joined)
	case preprocess.Python:
		return fmt.Sprintf("%s = bytes([%s])\n", name, joined)
	default:
		return fmt.Sprintf("/* %s */ %s\n", name, joined)
	}
}

func renderInterface(h preprocess.HostLanguage, symbol string) string {
	name := sanitizeSymbol(symbol) + "_bytecode"
	switch h {
	case preprocess.C, preprocess.Cpp:
		return fmt.Sprintf("extern const unsigned char %s[];\nextern const unsigned long %s_len;\n", name, name)
	default:
		return ""
	}
}

func sanitizeSymbol(s string) string {
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, ".", "_")
	return s
}

func reportAndFail(bag *diag.Bag) error {
	reportDiagnostics(bag, false)
	return fmt.Errorf("build failed")
}

func reportDiagnostics(bag *diag.Bag, quiet bool) {
	for _, d := range bag.All() {
		if quiet && d.Kind == diag.Warning {
			continue
		}
		fmt.Fprintln(os.Stderr, d.String())
	}
}
