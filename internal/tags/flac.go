package tags

import (
	"strconv"
	"strings"

	flac "github.com/go-flac/go-flac"
	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"

	"github.com/anagnostou/laterna/internal/errors"
)

// Comment keys the variant designates beyond the library's field
// constants.
const (
	vorbisAlbumArtist      = "ALBUMARTIST"
	vorbisComment          = "COMMENT"
	vorbisOriginalFilename = "ORIGINALFILENAME"
	vorbisSourceURL        = "PURL"
)

// flacHandler is the comment-based variant for FLAC files. All text
// fields live in one Vorbis comment block; artwork is a separate
// picture block.
type flacHandler struct{}

// NewFLACHandler returns the tag handler for FLAC files.
func NewFLACHandler() Handler { return flacHandler{} }

type flacContainer struct {
	path string
	file *flac.File
	// cmt is the working Vorbis comment block; it replaces the
	// on-disk block wholesale at Save.
	cmt *flacvorbis.MetaDataBlockVorbisComment
	// picture holds replacement artwork, nil to keep existing blocks.
	picture []byte
}

func (c *flacContainer) Path() string { return c.path }

func (flacHandler) Name() string { return "flac" }

func (flacHandler) Open(path string) (Container, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeFormat, "parse flac stream %s", path)
	}

	var cmt *flacvorbis.MetaDataBlockVorbisComment
	for _, block := range f.Meta {
		if block.Type == flac.VorbisComment {
			cmt, err = flacvorbis.ParseFromMetaDataBlock(*block)
			if err != nil {
				return nil, errors.Wrapf(err, errors.CodeFormat, "parse vorbis comment in %s", path)
			}
			break
		}
	}
	if cmt == nil {
		cmt = flacvorbis.New()
	}
	return &flacContainer{path: path, file: f, cmt: cmt}, nil
}

func (h flacHandler) Get(c Container, field Field) (string, error) {
	fc, ok := c.(*flacContainer)
	if !ok {
		return "", wrongContainer(h.Name(), c)
	}
	key, err := vorbisKey(field)
	if err != nil {
		return "", err
	}
	return commentValue(fc.cmt, key), nil
}

func (h flacHandler) Set(c Container, field Field, value string) error {
	fc, ok := c.(*flacContainer)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	key, err := vorbisKey(field)
	if err != nil {
		return err
	}
	setCommentValue(fc.cmt, key, value)
	return nil
}

// HandleFormatQuirks copies the acquisition tool's source URL comment
// into the generic comment field. Vorbis has no URL key that players
// agree on, and the raw PURL entry stays invisible in most of them.
func (h flacHandler) HandleFormatQuirks(c Container) error {
	fc, ok := c.(*flacContainer)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	url := commentValue(fc.cmt, vorbisSourceURL)
	if url != "" && commentValue(fc.cmt, vorbisComment) == "" {
		setCommentValue(fc.cmt, vorbisComment, url)
	}
	return nil
}

func (h flacHandler) HasTrackNumber(c Container) bool {
	fc, ok := c.(*flacContainer)
	if !ok {
		return false
	}
	return strings.TrimSpace(commentValue(fc.cmt, flacvorbis.FIELD_TRACKNUMBER)) != ""
}

func (h flacHandler) SetTrackNumber(c Container, n int) error {
	fc, ok := c.(*flacContainer)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	if n <= 0 {
		return errors.Inputf("track number must be positive, got %d", n)
	}
	setCommentValue(fc.cmt, flacvorbis.FIELD_TRACKNUMBER, strconv.Itoa(n))
	return nil
}

func (h flacHandler) ClearTrackNumber(c Container) error {
	fc, ok := c.(*flacContainer)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	setCommentValue(fc.cmt, flacvorbis.FIELD_TRACKNUMBER, "")
	return nil
}

func (h flacHandler) SetOriginalFilename(c Container, original string) error {
	return h.Set(c, FieldProvenance, original)
}

func (h flacHandler) EmbedPicture(c Container, data []byte) error {
	fc, ok := c.(*flacContainer)
	if !ok {
		return wrongContainer(h.Name(), c)
	}
	fc.picture = data
	return nil
}

func (h flacHandler) Save(c Container) error {
	fc, ok := c.(*flacContainer)
	if !ok {
		return wrongContainer(h.Name(), c)
	}

	kept := make([]*flac.MetaDataBlock, 0, len(fc.file.Meta)+2)
	for _, block := range fc.file.Meta {
		if block.Type == flac.VorbisComment {
			continue
		}
		if block.Type == flac.Picture && fc.picture != nil {
			continue
		}
		kept = append(kept, block)
	}

	cmtBlock := fc.cmt.Marshal()
	kept = append(kept, &cmtBlock)

	if fc.picture != nil {
		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			fc.picture,
			detectImageMIME(fc.picture),
		)
		if err != nil {
			return errors.Wrapf(err, errors.CodeInput, "build flac picture block for %s", fc.path)
		}
		picBlock := pic.Marshal()
		kept = append(kept, &picBlock)
	}

	fc.file.Meta = kept
	if err := fc.file.Save(fc.path); err != nil {
		return errors.Wrapf(err, errors.CodeIO, "save flac stream %s", fc.path)
	}
	return nil
}

func (flacHandler) Close(Container) error { return nil }

func vorbisKey(field Field) (string, error) {
	switch field {
	case FieldTitle:
		return flacvorbis.FIELD_TITLE, nil
	case FieldArtist:
		return flacvorbis.FIELD_ARTIST, nil
	case FieldAlbumArtist:
		return vorbisAlbumArtist, nil
	case FieldAlbum:
		return flacvorbis.FIELD_ALBUM, nil
	case FieldDate:
		return flacvorbis.FIELD_DATE, nil
	case FieldComment:
		return vorbisComment, nil
	case FieldProvenance:
		return vorbisOriginalFilename, nil
	default:
		return "", errors.Inputf("unknown tag field %q", field)
	}
}

// commentValue returns the first value for key, matching keys
// case-insensitively as Vorbis requires.
func commentValue(cmt *flacvorbis.MetaDataBlockVorbisComment, key string) string {
	for _, entry := range cmt.Comments {
		k, v, ok := strings.Cut(entry, "=")
		if ok && strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// setCommentValue replaces every entry for key with a single value, or
// removes the key entirely when value is empty.
func setCommentValue(cmt *flacvorbis.MetaDataBlockVorbisComment, key, value string) {
	kept := cmt.Comments[:0]
	for _, entry := range cmt.Comments {
		k, _, ok := strings.Cut(entry, "=")
		if ok && strings.EqualFold(k, key) {
			continue
		}
		kept = append(kept, entry)
	}
	cmt.Comments = kept
	if value != "" {
		cmt.Add(key, value)
	}
}
