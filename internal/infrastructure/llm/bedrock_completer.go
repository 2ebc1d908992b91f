package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go/auth/bearer"

	"multiAISummarizer/internal/domain/entity"
)

// converseAPI is the subset of the Bedrock runtime client used here.
type converseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// bedrockCompleter runs Claude on Amazon Bedrock, authenticated with a Bedrock API key.
type bedrockCompleter struct {
	client    converseAPI
	modelID   string
	maxTokens int32
	timeout   time.Duration
}

func newBedrockCompleter(ctx context.Context, cfg Config, bearerToken string) (*bedrockCompleter, error) {
	region := cfg.BedrockRegion
	if region == "" {
		return nil, &entity.ConfigurationError{Model: entity.ModelBedrock, Reason: "region is required (set BEDROCK_REGION)"}
	}

	sdkConfig, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, &entity.ConfigurationError{
			Model:  entity.ModelBedrock,
			Reason: fmt.Sprintf("failed to load aws config: %v", err),
		}
	}

	sdkConfig.BearerAuthTokenProvider = bearer.NewTokenCache(bearer.StaticTokenProvider{
		Token: bearer.Token{Value: bearerToken},
	})
	sdkConfig.AuthSchemePreference = []string{"httpBearerAuth"}

	return &bedrockCompleter{
		client:    bedrockruntime.NewFromConfig(sdkConfig),
		modelID:   cfg.BedrockModel,
		maxTokens: int32(cfg.MaxTokens),
		timeout:   cfg.Timeout,
	}, nil
}

func (c *bedrockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Converse(ctx, c.buildConverseInput(prompt))
	if err != nil {
		return "", fmt.Errorf("bedrock: invoke model: %w", err)
	}

	return c.parseResponse(resp)
}

func (c *bedrockCompleter) buildConverseInput(prompt string) *bedrockruntime.ConverseInput {
	return &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.modelID),
		Messages: []types.Message{
			{
				Role: types.ConversationRoleUser,
				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{Value: prompt},
				},
			},
		},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(c.maxTokens),
			Temperature: aws.Float32(0),
		},
	}
}

func (c *bedrockCompleter) parseResponse(resp *bedrockruntime.ConverseOutput) (string, error) {
	messageOutput, ok := resp.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("bedrock: unexpected response output type: %T", resp.Output)
	}

	if len(messageOutput.Value.Content) == 0 {
		return "", fmt.Errorf("bedrock: no content in response")
	}

	var builder strings.Builder
	for _, block := range messageOutput.Value.Content {
		textBlock, ok := block.(*types.ContentBlockMemberText)
		if !ok {
			continue
		}
		text := strings.TrimSpace(textBlock.Value)
		if text == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		builder.WriteString(text)
	}

	summary := strings.TrimSpace(builder.String())
	if summary == "" {
		return "", fmt.Errorf("bedrock: empty text in response")
	}
	return summary, nil
}
