package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// Bind 把 WsMsgReq.Body.Msg（json 解出的 map）解码到 dst，字段按 json tag 匹配。
func Bind(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errors.New("ws request body is nil")
	}
	return decode(req.Body.Msg, dst)
}

func decode(src, dst any) error {
	if src == nil {
		return nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(src)
}
