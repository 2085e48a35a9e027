package manifest

import (
	"fmt"

	"github.com/leapstack-labs/pkgmanifest/pkg/core"
)

// normalizeTargets builds the ordered target list: the library first, then
// binaries in declaration order. An empty lib list counts as no library.
func normalizeTargets(lib, bin []RawTarget, o *options) []core.Target {
	o.logger.Debug("normalizing targets", "lib", len(lib), "bin", len(bin))

	var targets []core.Target

	if len(lib) > 0 {
		l := lib[0]
		targets = append(targets, core.NewLibTarget(l.Name, targetPath(l, "src", o.sourceExt)))
		for _, dropped := range lib[1:] {
			o.logger.Debug("ignoring additional library target", "name", dropped.Name, "library", l.Name)
		}
	}

	// Binaries move under src/bin when a library owns src/.
	binDir := "src"
	if len(lib) > 0 {
		binDir = "src/bin"
	}
	for _, b := range bin {
		targets = append(targets, core.NewBinTarget(b.Name, targetPath(b, binDir, o.sourceExt)))
	}

	return targets
}

func targetPath(t RawTarget, dir, ext string) string {
	if t.Path != "" {
		return t.Path
	}
	return fmt.Sprintf("%s/%s.%s", dir, t.Name, ext)
}
