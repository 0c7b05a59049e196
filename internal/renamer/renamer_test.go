package renamer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderName(t *testing.T) {
	cases := []struct {
		Base     string
		ID       string
		Expected string
	}{
		{"Small Missile Turret", "111", "Small Missile Turret [111]"},
		{"Industrial Centrifuge (stable/dev)", "222", "Industrial Centrifuge (stable_dev) [222]"},
		{`What? "Yes": <no>`, "3", "What_ _Yes__ _no_ [3]"},
		{"Ripptide's CW+EE . Reuploaded...", "4", "Ripptide's CW+EE . Reuploaded [4]"},
		{"", "5", "5"},
		{"Lonely", "", "Lonely"},
	}
	for _, c := range cases {
		assert.Equal(t, c.Expected, FolderName(c.Base, c.ID), "FolderName(%q, %q)", c.Base, c.ID)
	}
}

func newModDir(t *testing.T) string {
	t.Helper()
	src := filepath.Join(t.TempDir(), "old-name")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Data"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "Data", "blocks.sbc"), []byte("<Definitions/>"), 0644))
	return src
}

func TestExecute_Move(t *testing.T) {
	src := newModDir(t)
	dest := t.TempDir()

	out, err := Execute(RenameTask{SourcePath: src, BaseTitle: "Nuke Launcher", WorkshopID: "9", DestBase: dest}, "move")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dest, "Nuke Launcher [9]"), out)

	_, err = os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	data, err := os.ReadFile(filepath.Join(out, "Data", "blocks.sbc"))
	require.NoError(t, err)
	assert.Equal(t, "<Definitions/>", string(data))
}

func TestExecute_Copy(t *testing.T) {
	src := newModDir(t)
	dest := t.TempDir()

	out, err := Execute(RenameTask{SourcePath: src, BaseTitle: "Nuke Launcher", WorkshopID: "9", DestBase: dest}, "copy")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(src, "Data", "blocks.sbc"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(out, "Data", "blocks.sbc"))
	assert.NoError(t, err)
}

func TestExecute_CopyKeepsSymlinks(t *testing.T) {
	src := newModDir(t)
	require.NoError(t, os.Symlink("Data", filepath.Join(src, "DataLink")))
	require.NoError(t, os.Symlink("Data/blocks.sbc", filepath.Join(src, "blocks.sbc")))
	dest := t.TempDir()

	out, err := Execute(RenameTask{SourcePath: src, BaseTitle: "Nuke Launcher", WorkshopID: "9", DestBase: dest}, "copy")
	require.NoError(t, err)

	link, err := os.Readlink(filepath.Join(out, "DataLink"))
	require.NoError(t, err)
	assert.Equal(t, "Data", link)

	link, err = os.Readlink(filepath.Join(out, "blocks.sbc"))
	require.NoError(t, err)
	assert.Equal(t, "Data/blocks.sbc", link)

	data, err := os.ReadFile(filepath.Join(out, "DataLink", "blocks.sbc"))
	require.NoError(t, err)
	assert.Equal(t, "<Definitions/>", string(data))
}

func TestCopyFile_MissingDestinationDir(t *testing.T) {
	src := filepath.Join(t.TempDir(), "a.sbc")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

	err := copyFile(src, filepath.Join(t.TempDir(), "missing", "a.sbc"))
	assert.Error(t, err)
}

func TestExecute_Link(t *testing.T) {
	src := newModDir(t)
	dest := t.TempDir()

	out, err := Execute(RenameTask{SourcePath: src, BaseTitle: "Nuke Launcher", WorkshopID: "9", DestBase: dest}, "link")
	require.NoError(t, err)

	target, err := os.Readlink(out)
	require.NoError(t, err)
	assert.Equal(t, src, target)
}

func TestExecute_TargetExists(t *testing.T) {
	src := newModDir(t)
	dest := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dest, "Nuke Launcher [9]"), 0755))

	_, err := Execute(RenameTask{SourcePath: src, BaseTitle: "Nuke Launcher", WorkshopID: "9", DestBase: dest}, "move")
	assert.Error(t, err)
}

func TestExecute_AlreadyInPlace(t *testing.T) {
	dest := t.TempDir()
	src := filepath.Join(dest, "Nuke Launcher [9]")
	require.NoError(t, os.MkdirAll(src, 0755))

	out, err := Execute(RenameTask{SourcePath: src, BaseTitle: "Nuke Launcher", WorkshopID: "9", DestBase: dest}, "move")
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestExecute_EmptySource(t *testing.T) {
	_, err := Execute(RenameTask{WorkshopID: "9", DestBase: t.TempDir()}, "move")
	assert.Error(t, err)
}
