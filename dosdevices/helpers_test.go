package dosdevices

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/YLonely/dosdev-manager/dosdevices/dosdevtest"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ns   *Namespace
	root string
	devs string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	root := filepath.Join(dir, "dosdevices")
	devs := filepath.Join(dir, "dev")
	require.NoError(t, os.Mkdir(root, 0755))
	require.NoError(t, os.Mkdir(devs, 0755))
	ns := New(root)
	ns.Identity = dosdevtest.FileIdentity{}
	return &fixture{ns: ns, root: root, devs: devs}
}

// device creates a fake disk node and returns its path.
func (f *fixture) device(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.devs, name)
	require.NoError(t, os.WriteFile(path, nil, 0644))
	return path
}

func (f *fixture) link(t *testing.T, target, name string) {
	t.Helper()
	require.NoError(t, os.Symlink(target, filepath.Join(f.root, name)))
}

type entry struct {
	name    string
	target  string
	modTime time.Time
}

// snapshot lists the namespace root with link targets and times.
func (f *fixture) snapshot(t *testing.T) []entry {
	t.Helper()
	infos, err := os.ReadDir(f.root)
	require.NoError(t, err)
	var entries []entry
	for _, di := range infos {
		path := filepath.Join(f.root, di.Name())
		fi, err := os.Lstat(path)
		require.NoError(t, err)
		target, _ := os.Readlink(path)
		entries = append(entries, entry{name: di.Name(), target: target, modTime: fi.ModTime()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	return entries
}
