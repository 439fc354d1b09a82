package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/apexwear/motionstudio-backend/internal/clients/gateway"
	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
	"github.com/apexwear/motionstudio-backend/internal/types"
)

// ViewAngles is the fixed set of camera perspectives rendered per
// generation request.
var ViewAngles = []string{"front", "side", "back"}

// ImageSynthesizer runs the third pipeline stage: one generated studio
// photo per view angle.
type ImageSynthesizer interface {
	// Synthesize returns a map keyed by view angle. A failed or
	// text-only result for one angle leaves a nil entry for that angle
	// and never prevents the others from completing. Quota signals
	// (429, 402) from the gateway abort the whole batch.
	Synthesize(ctx context.Context, athlete types.AthleteParams, motion types.MotionParams) (map[string]*string, error)
}

type imageSynthesizer struct {
	log     *logger.Logger
	gateway gateway.Client
	model   string
}

func NewImageSynthesizer(log *logger.Logger, gw gateway.Client, model string) ImageSynthesizer {
	return &imageSynthesizer{
		log:     log.With("service", "ImageSynthesizer"),
		gateway: gw,
		model:   model,
	}
}

func (is *imageSynthesizer) Synthesize(ctx context.Context, athlete types.AthleteParams, motion types.MotionParams) (map[string]*string, error) {
	results := make(map[string]*string, len(ViewAngles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, angle := range ViewAngles {
		g.Go(func() error {
			image, err := is.gateway.ChatImage(gctx, is.model, is.prompt(athlete, motion, angle))
			if err != nil {
				if isQuotaSignal(err) {
					return err
				}
				is.log.Error("Image generation failed", "angle", angle, "error", err)
				image = ""
			}
			mu.Lock()
			defer mu.Unlock()
			if image == "" {
				results[angle] = nil
			} else {
				results[angle] = &image
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (is *imageSynthesizer) prompt(athlete types.AthleteParams, motion types.MotionParams, angle string) string {
	return fmt.Sprintf(
		"Generate a professional studio photo of a %s athlete (%s build, size %s) wearing activewear performing %s at %d%% intensity. %s view angle. The garment should show realistic stretch, compression, and motion blur. Dark studio background with dramatic lighting. Professional sportswear campaign photo quality. Show realistic sweat and fabric tension. Athletic photography style similar to Nike or Adidas campaigns.",
		athlete.Gender, athlete.BodyType, athlete.Size, motion.Movement, motion.Intensity, angle,
	)
}
