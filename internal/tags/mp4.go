package tags

import (
	mp4tag "github.com/Sorrow446/go-mp4tag"

	"github.com/anagnostou/laterna/internal/errors"
)

// customOriginalFilename is the freeform atom name the variant
// designates for provenance.
const customOriginalFilename = "ORIGINALFILENAME"

// customSourceURL is the freeform atom the acquisition tool leaves the
// source page URL in.
const customSourceURL = "PURL"

// mp4Handler is the atom-based variant for M4A/MP4 files.
type mp4Handler struct{}

// NewMP4Handler returns the tag handler for MP4-family containers.
func NewMP4Handler() Handler { return mp4Handler{} }

type mp4Container struct {
	path string
	file *mp4tag.MP4
	// working holds the read-modify-write tag state; nothing touches
	// the file until Save.
	working *mp4tag.MP4Tags
	// deletes names atoms Write must remove, since zero values in the
	// working copy are skipped rather than erased.
	deletes []string
}

func (c *mp4Container) Path() string { return c.path }

func (mp4Handler) Name() string { return "mp4" }

func (mp4Handler) Open(path string) (Container, error) {
	f, err := mp4tag.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeFormat, "open mp4 container %s", path)
	}
	working, err := f.Read()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, errors.CodeFormat, "read mp4 atoms in %s", path)
	}
	if working.Custom == nil {
		working.Custom = make(map[string]string)
	}
	return &mp4Container{path: path, file: f, working: working}, nil
}

func (h mp4Handler) Get(c Container, field Field) (string, error) {
	mc, ok := c.(*mp4Container)
	if !ok {
		return "", wrongContainer(h.Name(), c)
	}
	switch field {
	case FieldTitle:
		return mc.working.Title, nil
	case FieldArtist:
		return mc.working.Artist, nil
	case FieldAlbumArtist:
		return mc.working.AlbumArtist, nil
	case FieldAlbum:
		return mc.working.Album, nil
	case FieldDate:
		return mc.working.Date, nil
	case FieldComment:
		return mc.working.Comment, nil
	case FieldProvenance:
		return mc.working.Custom[customOriginalFilename], nil
	default:
		return "", errors.Inputf("unknown tag field %q", field)
	}
}

func (h mp4Handler) Set(c Container, field Field, value string) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	switch field {
	case FieldTitle:
		mc.working.Title = value
	case FieldArtist:
		mc.working.Artist = value
	case FieldAlbumArtist:
		mc.working.AlbumArtist = value
	case FieldAlbum:
		mc.working.Album = value
	case FieldDate:
		// The MP4 date atom carries a full date cleanly, so the value
		// is stored untruncated.
		mc.working.Date = value
	case FieldComment:
		mc.working.Comment = value
	case FieldProvenance:
		mc.working.Custom[customOriginalFilename] = value
	default:
		return errors.Inputf("unknown tag field %q", field)
	}
	return nil
}

// HandleFormatQuirks copies the acquisition tool's source URL atom into
// the generic comment field. MP4 has no dedicated URL atom that common
// players surface, while the comment shows up everywhere.
func (h mp4Handler) HandleFormatQuirks(c Container) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if url := mc.working.Custom[customSourceURL]; url != "" && mc.working.Comment == "" {
		mc.working.Comment = url
	}
	return nil
}

func (h mp4Handler) HasTrackNumber(c Container) bool {
	mc, ok := c.(*mp4Container)
	if !ok {
		return false
	}
	return mc.working.TrackNumber > 0
}

func (h mp4Handler) SetTrackNumber(c Container, n int) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if n <= 0 {
		return errors.Inputf("track number must be positive, got %d", n)
	}
	mc.working.TrackNumber = int16(n)
	return nil
}

func (h mp4Handler) ClearTrackNumber(c Container) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	mc.working.TrackNumber = 0
	mc.working.TrackTotal = 0
	mc.deletes = append(mc.deletes, "track_number", "track_total")
	return nil
}

func (h mp4Handler) SetOriginalFilename(c Container, original string) error {
	return h.Set(c, FieldProvenance, original)
}

func (h mp4Handler) EmbedPicture(c Container, data []byte) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	mc.working.Pictures = []*mp4tag.MP4Picture{{Data: data}}
	return nil
}

func (h mp4Handler) Save(c Container) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if err := mc.file.Write(mc.working, mc.deletes); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "write mp4 atoms to %s", mc.path)
	}
	mc.deletes = nil
	return nil
}

func (h mp4Handler) Close(c Container) error {
	mc, ok := c.(*mp4Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	return mc.file.Close()
}
