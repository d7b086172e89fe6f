package pipeline

import (
	"encoding/json"
	"os"

	"github.com/anagnostou/laterna/internal/errors"
)

// itemInfo mirrors the subset of the downloader's info JSON the
// pipeline consumes.
type itemInfo struct {
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	WebpageURL  string  `json:"webpage_url"`
	UploadDate  string  `json:"upload_date"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
}

// LoadItemMeta reads the downloader's item metadata file. A missing
// file yields empty metadata, since files can still be tagged from
// their existing tags; a malformed file is an input error.
func LoadItemMeta(path string) (ItemMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ItemMeta{}, nil
		}
		return ItemMeta{}, errors.Wrapf(err, errors.CodeIO, "read item info %s", path)
	}

	var info itemInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return ItemMeta{}, errors.Wrapf(err, errors.CodeInput, "parse item info %s", path)
	}

	return ItemMeta{
		Title:       info.Title,
		Uploader:    info.Uploader,
		URL:         info.WebpageURL,
		UploadDate:  info.UploadDate,
		Description: info.Description,
		Duration:    int(info.Duration),
	}, nil
}
