package helper

import (
	"bytes"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

// FlexString принимает в JSON и строку, и число: "42" и 42 дают "42".
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := sonic.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if _, err := strconv.ParseFloat(string(b), 64); err != nil {
		return errors.Errorf("expected string or number, got %s", string(b))
	}
	*f = FlexString(b)
	return nil
}

func (f FlexString) String() string { return string(f) }
