package service

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/polly"
	"github.com/aws/aws-sdk-go-v2/service/polly/types"
	"github.com/rs/zerolog/log"

	cfg "github.com/GTDGit/food_finder/internal/config"
	"github.com/GTDGit/food_finder/internal/models"
)

// PollyAPI is the subset of the Polly client used by PollyTTS.
type PollyAPI interface {
	SynthesizeSpeech(ctx context.Context, params *polly.SynthesizeSpeechInput, optFns ...func(*polly.Options)) (*polly.SynthesizeSpeechOutput, error)
	DescribeVoices(ctx context.Context, params *polly.DescribeVoicesInput, optFns ...func(*polly.Options)) (*polly.DescribeVoicesOutput, error)
}

// PollyTTS synthesizes speech with Amazon Polly neural voices.
type PollyTTS struct {
	client       PollyAPI
	defaultVoice string
}

// NewPollyTTS loads the default AWS credential chain for the configured region.
func NewPollyTTS(ctx context.Context, awsCfg *cfg.AWSConfig) (*PollyTTS, error) {
	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsCfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}
	return NewPollyTTSWithClient(polly.NewFromConfig(sdkCfg), awsCfg.PollyVoice), nil
}

// NewPollyTTSWithClient wraps an existing Polly client.
func NewPollyTTSWithClient(client PollyAPI, defaultVoice string) *PollyTTS {
	if defaultVoice == "" {
		defaultVoice = string(types.VoiceIdJoanna)
	}
	return &PollyTTS{client: client, defaultVoice: defaultVoice}
}

// Name returns the provider name
func (p *PollyTTS) Name() string { return ProviderPolly }

// Synthesize implements TTSProvider.
func (p *PollyTTS) Synthesize(ctx context.Context, text, voice string) (*models.Audio, error) {
	if voice == "" {
		voice = p.defaultVoice
	}

	out, err := p.client.SynthesizeSpeech(ctx, &polly.SynthesizeSpeechInput{
		Engine:       types.EngineNeural,
		OutputFormat: types.OutputFormatMp3,
		Text:         aws.String(text),
		VoiceId:      types.VoiceId(voice),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ProviderPolly, err)
	}
	defer out.AudioStream.Close()

	data, err := io.ReadAll(out.AudioStream)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read audio stream: %w", ProviderPolly, err)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" {
		contentType = "audio/mpeg"
	}
	return &models.Audio{Data: data, ContentType: contentType}, nil
}

// Voices implements TTSProvider. It lists every neural voice, following pagination.
func (p *PollyTTS) Voices(ctx context.Context) ([]models.Voice, error) {
	var (
		voices []models.Voice
		token  *string
	)
	for {
		out, err := p.client.DescribeVoices(ctx, &polly.DescribeVoicesInput{
			Engine:    types.EngineNeural,
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ProviderPolly, err)
		}
		for _, v := range out.Voices {
			voices = append(voices, models.Voice{
				ID:       string(v.Id),
				Name:     aws.ToString(v.Name),
				Category: "polly:" + aws.ToString(v.LanguageName),
			})
		}
		if out.NextToken == nil || *out.NextToken == "" {
			break
		}
		token = out.NextToken
	}

	log.Debug().Int("count", len(voices)).Msg("Polly voices listed")
	return voices, nil
}
