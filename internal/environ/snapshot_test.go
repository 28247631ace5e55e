package environ

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnviron_PreservesOrder(t *testing.T) {
	s := FromEnviron([]string{"B=2", "A=1", "C=3"})
	require.Equal(t, 3, s.Len())
	assert.Equal(t, []Entry{{"B", "2"}, {"A", "1"}, {"C", "3"}}, s.Entries())
}

func TestFromEnviron_SkipsMalformed(t *testing.T) {
	s := FromEnviron([]string{"NOEQUALSSIGN", "", "OK=yes"})
	assert.Equal(t, []Entry{{"OK", "yes"}}, s.Entries())
}

func TestFromEnviron_DuplicateOverrides(t *testing.T) {
	s := FromEnviron([]string{"A=1", "B=2", "A=3"})
	assert.Equal(t, []Entry{{"A", "3"}, {"B", "2"}}, s.Entries())
}

func TestFromEnviron_ValueContainsEquals(t *testing.T) {
	s := FromEnviron([]string{"OPTS=a=b=c", "EMPTY="})
	v, ok := s.Lookup("OPTS")
	require.True(t, ok)
	assert.Equal(t, "a=b=c", v)

	v, ok = s.Lookup("EMPTY")
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestFromEnviron_WindowsDriveEntry(t *testing.T) {
	s := FromEnviron([]string{`=C:=C:\work`})
	v, ok := s.Lookup("=C:")
	require.True(t, ok)
	assert.Equal(t, `C:\work`, v)
}

func TestSnapshot_SetAppendsAndReplaces(t *testing.T) {
	s := Empty()
	s.Set("A", "1")
	s.Set("B", "2")
	s.Set("A", "9")
	assert.Equal(t, []Entry{{"A", "9"}, {"B", "2"}}, s.Entries())
}

func TestSnapshot_EntriesIsCopy(t *testing.T) {
	s := FromEnviron([]string{"A=1"})
	e := s.Entries()
	e[0].Value = "changed"
	v, _ := s.Lookup("A")
	assert.Equal(t, "1", v)
}

func TestIsAssignment(t *testing.T) {
	assert.True(t, IsAssignment("FOO=bar"))
	assert.True(t, IsAssignment("FOO="))
	assert.False(t, IsAssignment("=bar"))
	assert.False(t, IsAssignment("ls"))
	assert.False(t, IsAssignment("-la"))
	assert.False(t, IsAssignment(""))
}

func TestApplyAssignments(t *testing.T) {
	s := FromEnviron([]string{"HOME=/home/user"})
	s.ApplyAssignments([]string{"HOME=/tmp", "NEW=value=x"})
	assert.Equal(t, []Entry{{"HOME", "/tmp"}, {"NEW", "value=x"}}, s.Entries())
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	require.NoError(t, os.WriteFile(first, []byte("ZED=1\nALPHA=a\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("ALPHA=override\n"), 0o600))

	s := FromEnviron([]string{"HOME=/home/user"})
	require.NoError(t, s.LoadEnvFiles(first, second))
	assert.Equal(t, []Entry{{"HOME", "/home/user"}, {"ALPHA", "override"}, {"ZED", "1"}}, s.Entries())
}

func TestLoadEnvFiles_Missing(t *testing.T) {
	err := Empty().LoadEnvFiles(filepath.Join(t.TempDir(), "nope.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.env")
}
