package catalog

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/zhubert/splashctl/internal/logger"
)

// contentsDir holds a package's assets, next to its metadata file.
const contentsDir = "contents"

// assetPaths maps named assets of a look-and-feel package onto files below
// contents/. Keys not listed here are taken as paths below contents/.
var assetPaths = map[string]string{
	"splashmainscript":     "splash/Splash.qml",
	"lockscreenmainscript": "lockscreen/LockScreen.qml",
	"logoutmainscript":     "logout/Logout.qml",
	"defaults":             "defaults",
	"preview":              "previews/preview.png",
	"fullscreenpreview":    "previews/fullscreenpreview.jpg",
}

// dirPackage is a theme package unpacked in a directory.
type dirPackage struct {
	dir  string
	meta Metadata
}

func (p *dirPackage) Metadata() Metadata {
	return p.meta
}

func (p *dirPackage) FilePath(asset string) string {
	rel, ok := assetPaths[asset]
	if !ok {
		rel = asset
	}
	path := filepath.Join(p.dir, contentsDir, filepath.FromSlash(rel))
	if !isWithin(filepath.Join(p.dir, contentsDir), path) {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// FSSource discovers packages in theme roots such as
// /usr/share/plasma/look-and-feel. Each immediate subdirectory of a root is
// one candidate, named by the directory.
type FSSource struct {
	roots []string
	langs []language.Tag
	log   *slog.Logger
}

// NewFSSource creates a source over roots, most specific first. langs selects
// translated names and comments; nil keeps the untranslated values.
func NewFSSource(roots []string, langs []language.Tag) *FSSource {
	return &FSSource{
		roots: roots,
		langs: langs,
		log:   logger.ComponentLogger("catalog"),
	}
}

// Roots returns the directories this source scans.
func (s *FSSource) Roots() []string {
	return s.roots
}

// Packages scans every root concurrently and merges the results in root
// order. A directory name found in an earlier root shadows later ones.
func (s *FSSource) Packages() []Package {
	perRoot := make([][]*dirPackage, len(s.roots))

	var g errgroup.Group
	for i, root := range s.roots {
		g.Go(func() error {
			perRoot[i] = s.scanRoot(root)
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]bool)
	var pkgs []Package
	for _, found := range perRoot {
		for _, p := range found {
			name := filepath.Base(p.dir)
			if seen[name] {
				continue
			}
			seen[name] = true
			pkgs = append(pkgs, p)
		}
	}
	return pkgs
}

func (s *FSSource) scanRoot(root string) []*dirPackage {
	entries, err := os.ReadDir(root)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("cannot read theme root", "root", root, "error", err)
		}
		return nil
	}

	var pkgs []*dirPackage
	for _, entry := range entries {
		dir := filepath.Join(root, entry.Name())
		// Follow symlinks; ReadDir reports the link itself.
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}

		meta, err := readMetadata(dir, s.langs)
		if err != nil {
			s.log.Debug("skipping unreadable package", "dir", dir, "error", err)
			continue
		}
		if meta.ID == "" {
			meta.ID = entry.Name()
		}
		pkgs = append(pkgs, &dirPackage{dir: dir, meta: meta})
	}
	return pkgs
}

// isWithin reports whether path is base or below it.
func isWithin(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
