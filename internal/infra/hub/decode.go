package hub

import (
	"github.com/tidwall/gjson"

	"tk-labels/internal/domain/entity"
)

// decodeNotices reads the "notice" array of a project response. Items keep their hub order;
// missing keys inside an item decode as empty strings.
func decodeNotices(body []byte) ([]entity.Notice, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	list := gjson.GetBytes(body, "notice")
	if !list.IsArray() {
		return nil, ErrMissingNotice
	}

	items := list.Array()
	notices := make([]entity.Notice, 0, len(items))
	for _, item := range items {
		notices = append(notices, entity.Notice{
			DefaultText: item.Get("default_text").String(),
			ImgURL:      item.Get("img_url").String(),
		})
	}
	return notices, nil
}
