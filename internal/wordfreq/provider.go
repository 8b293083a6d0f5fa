package wordfreq

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Provider serves ranked corpora from a wordfreq wheel. When WheelPath is
// empty the latest wheel is downloaded into CacheDir on first use.
type Provider struct {
	CacheDir  string
	WheelPath string
	ListType  string
	Logger    *zap.Logger

	wheel *Wheel
}

// Corpus returns the top size words for lang.
func (p *Provider) Corpus(ctx context.Context, lang string, size int) ([]string, error) {
	wheel, err := p.Wheel(ctx)
	if err != nil {
		return nil, err
	}
	types, err := ListLanguageTypes(wheel.Path)
	if err != nil {
		return nil, err
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	available, ok := types[lang]
	if !ok {
		return nil, fmt.Errorf("unknown language %q (available: %s)", lang, strings.Join(LanguagesFromTypes(types), ", "))
	}
	listType, ok := ResolveListType(available, p.ListType)
	if !ok {
		return nil, fmt.Errorf("no %s word list available for %s", p.ListType, lang)
	}
	p.logger().Debug("reading frequency list",
		zap.String("lang", lang),
		zap.String("list", listType),
		zap.Int("size", size))
	return TopN(wheel.Path, lang, listType, size)
}

// Wheel resolves the wheel used by the provider, downloading it if needed.
func (p *Provider) Wheel(ctx context.Context) (Wheel, error) {
	if p.wheel != nil {
		return *p.wheel, nil
	}
	if p.WheelPath != "" {
		p.wheel = &Wheel{Path: p.WheelPath, Cached: true}
		return *p.wheel, nil
	}
	p.logger().Info("fetching wordfreq metadata")
	wheel, err := DownloadLatestWheel(ctx, p.CacheDir)
	if err != nil {
		return Wheel{}, fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	if wheel.Cached {
		p.logger().Info("using cached wheel", zap.String("file", wheel.Filename))
	} else {
		p.logger().Info("downloaded wheel", zap.String("file", wheel.Filename), zap.String("version", wheel.Version))
	}
	p.wheel = &wheel
	return wheel, nil
}

func (p *Provider) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
