package rawdata

import (
	"fmt"
	"strings"
)

// Language identifies the target language of a build session. The numeric
// value is written into the container header and must stay stable.
type Language uint16

const (
	LangUnknown Language = 0
	LangEnUS    Language = 1033
	LangZhCN    Language = 2052
	LangJaJP    Language = 1041
	LangDeDE    Language = 1031
	LangFrFR    Language = 1036
	LangEsES    Language = 3082
)

var languageCodes = map[Language]string{
	LangEnUS: "en-US",
	LangZhCN: "zh-CN",
	LangJaJP: "ja-JP",
	LangDeDE: "de-DE",
	LangFrFR: "fr-FR",
	LangEsES: "es-ES",
}

// Code returns the BCP-47 style code used in path templates.
func (l Language) Code() string {
	if c, ok := languageCodes[l]; ok {
		return c
	}
	return "und"
}

// ID returns the numeric language id written into the container header.
func (l Language) ID() uint32 {
	return uint32(l)
}

func (l Language) String() string {
	return l.Code()
}

// ParseLanguage resolves a BCP-47 style code, case-insensitively.
func ParseLanguage(s string) (Language, error) {
	for l, c := range languageCodes {
		if strings.EqualFold(c, s) {
			return l, nil
		}
	}
	return LangUnknown, fmt.Errorf("unknown language %q", s)
}
