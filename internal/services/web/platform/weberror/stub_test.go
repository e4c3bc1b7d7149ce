package weberror

import "golang.org/x/text/message"

type stubLocalizer map[string]string

func (s stubLocalizer) Sprintf(key message.Reference, _ ...any) string {
	k, _ := key.(string)
	if value, ok := s[k]; ok {
		return value
	}
	return k
}
