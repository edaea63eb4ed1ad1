package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFile_PlainText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "hello from a text file")

	res, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "hello from a text file", res.Text)
	assert.Nil(t, res.PageMap)
}

func TestFile_Markdown(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "readme.md", "# Title\n\nBody text.")

	res, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody text.", res.Text)
}

func TestFile_UnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", "{}")

	_, err := File(path)
	assert.Error(t, err)
}

func TestFile_CorruptPDF(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.pdf", "this is not a pdf")

	_, err := File(path)
	assert.Error(t, err)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a/b/doc.PDF"))
	assert.True(t, Supported("doc.txt"))
	assert.True(t, Supported("doc.md"))
	assert.True(t, Supported("doc.docx"))
	assert.False(t, Supported("doc.json"))
	assert.False(t, Supported("doc"))
}

func TestCleanCJKText_RemovesSpacesBetweenCJK(t *testing.T) {
	assert.Equal(t, "孫悟空", cleanCJKText("孫 悟 空"))
	assert.Equal(t, "今天天氣很好", cleanCJKText("今 天 天 氣 很 好"))
}

func TestCleanCJKText_KeepsLatinSpacing(t *testing.T) {
	assert.Equal(t, "hello world", cleanCJKText("hello world"))
}

func TestCleanCJKText_NormalisesBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", cleanCJKText("a\n\n\n\n\nb"))
}

func TestCleanCJKText_KeepsNewlinesBetweenCJK(t *testing.T) {
	assert.Equal(t, "第一行\n第二行", cleanCJKText("第一行\n第二行"))
}
