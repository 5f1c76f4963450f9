package roompack

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
)

// The Playdate SDK compiler
var compiler = "pdc"

const stubSource = "function playdate.update() end\n"

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}

// Move every regular file in src with one of the given extensions to dst,
// which may be on a different filesystem.
func moveFiles(src, dst string, exts ...string) error {
	names, err := ioutil.ReadDir(src)
	if err != nil {
		return err
	}

	for _, info := range names {
		if !info.Mode().IsRegular() {
			continue
		}
		match := false
		for _, ext := range exts {
			if filepath.Ext(info.Name()) == ext {
				match = true
				break
			}
		}
		if !match {
			continue
		}

		from, to := filepath.Join(src, info.Name()), filepath.Join(dst, info.Name())
		if err := os.Rename(from, to); err == nil {
			continue
		}
		if err := copyFile(from, to); err != nil {
			return err
		}
		if err := os.Remove(from); err != nil {
			return err
		}
	}

	return nil
}

// Compile converts the images of the pack in dir into Playdate image tables
// with pdc. The PNG files are replaced by the compiled files on success and
// left in place otherwise.
func (r *RoomPack) Compile(dir string) error {
	tmp, err := ioutil.TempDir("", "roompack")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	build := filepath.Join(tmp, "fake")
	if err := os.Mkdir(build, 0755); err != nil {
		return err
	}
	if err := ioutil.WriteFile(filepath.Join(build, "main.lua"), []byte(stubSource), 0644); err != nil {
		return err
	}

	if err := moveFiles(dir, build, ".png", ".wav"); err != nil {
		return err
	}

	cmd := exec.Command(compiler, build)
	cmd.Stdout = r.logger.Writer()
	cmd.Stderr = r.logger.Writer()

	r.logger.Printf("Compiling %s\n", dir)
	if err := cmd.Run(); err != nil {
		if err := moveFiles(build, dir, ".png", ".wav"); err != nil {
			return err
		}
		return fmt.Errorf("%s: %w", compiler, err)
	}

	return moveFiles(build+".pdx", dir, ".pdi", ".pdt", ".pda")
}
