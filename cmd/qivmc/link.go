package main

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/kegliz/qivm/internal/config"
)

// linkWithCCompiler shells out to the configured C compiler against the
// spliced target source, mirroring original_source/cli/src/main.rs's
// fixed -lquantcrt/-lqivm/-lqil link line. STATEQ_HOME resolves the
// include/lib search paths unless --qivm-lib-path overrides them.
func linkWithCCompiler(f *buildFlags, targetPath, outputName string) error {
	home := f.libPath
	if home == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		home, err = cfg.StateqHome()
		if err != nil {
			return fmt.Errorf("resolving qivm runtime library: %w", err)
		}
	}

	args := []string{
		targetPath,
		"-I" + home + "/include",
		"-L" + home + "/lib",
		"-lquantcrt",
		"-lqivm",
		"-lqil",
		"-lm",
		"-Wl,-rpath=./",
		"-o", outputName,
		fmt.Sprintf("-O%d", f.optLevel),
	}
	if f.ccFlags != "" {
		args = append(args, strings.Fields(f.ccFlags)...)
	}

	cc := exec.Command(f.cc, args...)
	out, err := cc.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\n%s", f.cc, err, out)
	}
	return nil
}
