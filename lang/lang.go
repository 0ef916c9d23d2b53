package lang

import (
	"embed"
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/sjzsdu/codeide/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   language.Tag
	mu        sync.RWMutex
)

var supported = []language.Tag{language.English, language.SimplifiedChinese}

func init() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, name := range []string{"locales/en.json", "locales/zh-CN.json"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			panic(err)
		}
	}
	SetLanguage(detect())
}

// detect 依次读取配置项 lang 和环境变量 LANG
func detect() string {
	if v := config.GetConfig(config.KeyLang); v != "" {
		return v
	}
	return os.Getenv("LANG")
}

// SetLanguage 切换当前语言，无法识别时回退到英文
func SetLanguage(name string) {
	name = strings.SplitN(name, ".", 2)[0]
	name = strings.ReplaceAll(name, "_", "-")
	tag, _ := language.MatchStrings(language.NewMatcher(supported), name)
	base, _ := tag.Base()

	mu.Lock()
	defer mu.Unlock()
	current, name = language.English, "en"
	if zh, _ := language.SimplifiedChinese.Base(); base == zh {
		current, name = language.SimplifiedChinese, "zh-CN"
	}
	localizer = i18n.NewLocalizer(bundle, name)
}

// Current 返回当前生效的语言
func Current() language.Tag {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// T 翻译一条消息，没有译文时原样返回
func T(msg string) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	out, err := l.Localize(&i18n.LocalizeConfig{MessageID: msg})
	if err != nil || out == "" {
		return msg
	}
	return out
}
