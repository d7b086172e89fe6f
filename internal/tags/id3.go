package tags

import (
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"

	"github.com/anagnostou/laterna/internal/errors"
)

// Frame ids the variant designates beyond the library's common set.
const (
	frameAlbumArtist = "TPE2"
	frameTrack       = "TRCK"
	// frameOriginalFilename is the native ID3 home for provenance.
	frameOriginalFilename = "TOFN"
)

// id3Handler is the frame-based variant for MP3 files.
type id3Handler struct{}

// NewID3Handler returns the tag handler for ID3v2-tagged MP3 files.
func NewID3Handler() Handler { return id3Handler{} }

type id3Container struct {
	path string
	tag  *id3v2.Tag
}

func (c *id3Container) Path() string { return c.path }

func (id3Handler) Name() string { return "id3" }

func (id3Handler) Open(path string) (Container, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeFormat, "parse id3 tag in %s", path)
	}
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	return &id3Container{path: path, tag: tag}, nil
}

func (h id3Handler) Get(c Container, field Field) (string, error) {
	ic, ok := c.(*id3Container)
	if !ok {
		return "", wrongContainer(h.Name(), c)
	}
	switch field {
	case FieldTitle:
		return ic.tag.Title(), nil
	case FieldArtist:
		return ic.tag.Artist(), nil
	case FieldAlbumArtist:
		return ic.tag.GetTextFrame(frameAlbumArtist).Text, nil
	case FieldAlbum:
		return ic.tag.Album(), nil
	case FieldDate:
		return ic.tag.Year(), nil
	case FieldComment:
		return firstComment(ic.tag), nil
	case FieldProvenance:
		return ic.tag.GetTextFrame(frameOriginalFilename).Text, nil
	default:
		return "", errors.Inputf("unknown tag field %q", field)
	}
}

func (h id3Handler) Set(c Container, field Field, value string) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	switch field {
	case FieldTitle:
		ic.tag.SetTitle(value)
	case FieldArtist:
		ic.tag.SetArtist(value)
	case FieldAlbumArtist:
		ic.tag.AddTextFrame(frameAlbumArtist, id3v2.EncodingUTF8, value)
	case FieldAlbum:
		ic.tag.SetAlbum(value)
	case FieldDate:
		ic.tag.SetYear(value)
	case FieldComment:
		setComment(ic.tag, value)
	case FieldProvenance:
		ic.tag.AddTextFrame(frameOriginalFilename, id3v2.EncodingUTF8, value)
	default:
		return errors.Inputf("unknown tag field %q", field)
	}
	return nil
}

// HandleFormatQuirks collapses a full date down to a bare year. Most
// ID3 consumers render only the year, and a mixed library looks
// cleaner when every file agrees.
func (h id3Handler) HandleFormatQuirks(c Container) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if date := ic.tag.Year(); date != "" {
		if year := collapseDateToYear(date); year != date {
			ic.tag.SetYear(year)
		}
	}
	return nil
}

func (h id3Handler) HasTrackNumber(c Container) bool {
	ic, ok := c.(*id3Container)
	if !ok {
		return false
	}
	return strings.TrimSpace(ic.tag.GetTextFrame(frameTrack).Text) != ""
}

func (h id3Handler) SetTrackNumber(c Container, n int) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if n <= 0 {
		return errors.Inputf("track number must be positive, got %d", n)
	}
	ic.tag.AddTextFrame(frameTrack, id3v2.EncodingUTF8, strconv.Itoa(n))
	return nil
}

func (h id3Handler) ClearTrackNumber(c Container) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	ic.tag.DeleteFrames(frameTrack)
	return nil
}

func (h id3Handler) SetOriginalFilename(c Container, original string) error {
	return h.Set(c, FieldProvenance, original)
}

func (h id3Handler) EmbedPicture(c Container, data []byte) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	ic.tag.DeleteFrames(ic.tag.CommonID("Attached picture"))
	ic.tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    detectImageMIME(data),
		PictureType: id3v2.PTFrontCover,
		Description: "Front cover",
		Picture:     data,
	})
	return nil
}

func (h id3Handler) Save(c Container) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if err := ic.tag.Save(); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "save id3 tag to %s", ic.path)
	}
	return nil
}

func (h id3Handler) Close(c Container) error {
	ic, ok := c.(*id3Container)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	return ic.tag.Close()
}

func firstComment(tag *id3v2.Tag) string {
	for _, f := range tag.GetFrames(tag.CommonID("Comments")) {
		if cf, ok := f.(id3v2.CommentFrame); ok {
			return cf.Text
		}
	}
	return ""
}

func setComment(tag *id3v2.Tag, value string) {
	tag.DeleteFrames(tag.CommonID("Comments"))
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding: id3v2.EncodingUTF8,
		Language: "eng",
		Text:     value,
	})
}
