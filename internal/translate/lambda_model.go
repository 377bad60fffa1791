package translate

import (
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

// LambdaModel translates through a Lambda-hosted translation model. It is an
// alternative Model backend for deployments that keep the heavyweight model
// out of this process.
type LambdaModel struct {
	client       *lambda.Client
	functionName string
}

// lambdaRequest is the payload sent to the translator function.
type lambdaRequest struct {
	Text       string `json:"text"`
	SourceCode string `json:"source_code"`
	TargetCode string `json:"target_code"`
}

// lambdaResponse is the payload returned by the translator function.
type lambdaResponse struct {
	Translation string `json:"translation"`
	Error       string `json:"error,omitempty"`
}

// NewLambdaModel creates a LambdaModel invoking the named function with the
// ambient AWS configuration.
func NewLambdaModel(ctx context.Context, functionName string) (*LambdaModel, error) {
	if functionName == "" {
		return nil, fmt.Errorf("translator function name is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return &LambdaModel{
		client:       lambda.NewFromConfig(cfg),
		functionName: functionName,
	}, nil
}

// Translate implements the Model interface.
func (m *LambdaModel) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	payload, err := json.Marshal(lambdaRequest{
		Text:       text,
		SourceCode: sourceCode,
		TargetCode: targetCode,
	})
	if err != nil {
		return "", fmt.Errorf("marshal translator request: %w", err)
	}

	result, err := m.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName: &m.functionName,
		Payload:      payload,
	})
	if err != nil {
		return "", fmt.Errorf("invoke %s: %w", m.functionName, err)
	}
	if result.FunctionError != nil {
		return "", fmt.Errorf("lambda error: %s", *result.FunctionError)
	}

	var resp lambdaResponse
	if err := json.Unmarshal(result.Payload, &resp); err != nil {
		return "", fmt.Errorf("parse translator response: %w", err)
	}
	if resp.Error != "" {
		return "", fmt.Errorf("translator error: %s", resp.Error)
	}

	return resp.Translation, nil
}
