package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTaglessMP3 creates an MP3 with audio frame sync bytes and no
// ID3 header, the shape a stream remux leaves behind.
func writeTaglessMP3(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.mp3")
	data := append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 128)...)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestID3RoundTrip(t *testing.T) {
	h := NewID3Handler()
	path := writeTaglessMP3(t)

	c, err := h.Open(path)
	require.NoError(t, err)
	ts := TagSet{
		Title:       "Όλα σε θυμίζουν",
		Artist:      "Χάρις Αλεξίου",
		AlbumArtist: "Χάρις Αλεξίου",
		Album:       "Η ζωή μου κύκλους κάνει (1982)",
		Date:        "1982",
		Comment:     "https://example.invalid/watch?v=dQw4w9WgXcQ",
		TrackNumber: 3,
		Picture:     pngPixel,
	}
	require.NoError(t, Apply(h, c, ts))
	require.NoError(t, h.Save(c))
	require.NoError(t, h.Close(c))

	c, err = h.Open(path)
	require.NoError(t, err)
	defer h.Close(c)

	for field, want := range map[Field]string{
		FieldTitle:       ts.Title,
		FieldArtist:      ts.Artist,
		FieldAlbumArtist: ts.AlbumArtist,
		FieldAlbum:       ts.Album,
		FieldDate:        ts.Date,
		FieldComment:     ts.Comment,
	} {
		got, err := h.Get(c, field)
		require.NoError(t, err, field)
		require.Equal(t, want, got, field)
	}
	require.True(t, h.HasTrackNumber(c))
}

func TestID3QuirkCollapsesDateToYear(t *testing.T) {
	h := NewID3Handler()
	path := writeTaglessMP3(t)

	c, err := h.Open(path)
	require.NoError(t, err)
	defer h.Close(c)

	require.NoError(t, h.Set(c, FieldDate, "2023-06-15"))
	require.NoError(t, h.HandleFormatQuirks(c))

	got, err := h.Get(c, FieldDate)
	require.NoError(t, err)
	require.Equal(t, "2023", got)
}

func TestID3QuirkLeavesBareYearAlone(t *testing.T) {
	h := NewID3Handler()
	path := writeTaglessMP3(t)

	c, err := h.Open(path)
	require.NoError(t, err)
	defer h.Close(c)

	require.NoError(t, h.Set(c, FieldDate, "1982"))
	require.NoError(t, h.HandleFormatQuirks(c))

	got, err := h.Get(c, FieldDate)
	require.NoError(t, err)
	require.Equal(t, "1982", got)
}

func TestID3ClearTrackNumber(t *testing.T) {
	h := NewID3Handler()
	path := writeTaglessMP3(t)

	c, err := h.Open(path)
	require.NoError(t, err)
	require.NoError(t, h.SetTrackNumber(c, 7))
	require.True(t, h.HasTrackNumber(c))
	require.NoError(t, h.Save(c))
	require.NoError(t, h.Close(c))

	c, err = h.Open(path)
	require.NoError(t, err)
	require.True(t, h.HasTrackNumber(c))
	require.NoError(t, h.ClearTrackNumber(c))
	require.False(t, h.HasTrackNumber(c))
	require.NoError(t, h.Save(c))
	require.NoError(t, h.Close(c))

	c, err = h.Open(path)
	require.NoError(t, err)
	defer h.Close(c)
	require.False(t, h.HasTrackNumber(c))
}

func TestID3RejectsNonPositiveTrackNumber(t *testing.T) {
	h := NewID3Handler()
	path := writeTaglessMP3(t)

	c, err := h.Open(path)
	require.NoError(t, err)
	defer h.Close(c)

	require.Error(t, h.SetTrackNumber(c, 0))
	require.Error(t, h.SetTrackNumber(c, -2))
}
