package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultSystemPrompt = `Você é um assistente que responde perguntas sobre saúde e meio ambiente usando apenas o contexto fornecido.

Regras:
1. Responda em português, em tom claro e acessível.
2. Use apenas informações presentes no contexto. Não invente fatos.
3. Comece a resposta com um único caractere de validade seguido de "|":
   - "T|" quando o contexto sustenta uma resposta confiável.
   - "F|" quando o contexto não sustenta uma resposta confiável.
4. Depois do delimitador, escreva a resposta em até três parágrafos curtos.`

const articleSummaryPrompt = `Você é um editor que resume matérias jornalísticas para mensagens de WhatsApp.

Regras:
1. Resuma em português, em até três frases.
2. Preserve números, nomes e datas da matéria.
3. Termine com o link de referência fornecido.`

type OpenAIClient struct {
	client     *openai.Client
	chatModel  openai.ChatModel
	embedModel openai.EmbeddingModel
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{
		client:     &client,
		chatModel:  openai.ChatModelGPT4,
		embedModel: openai.EmbeddingModelTextEmbeddingAda002,
	}
}

func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: c.embedModel,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})

	if err != nil {
		return nil, fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding from openai")
	}

	return resp.Data[0].Embedding, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, query, contextText, systemPrompt string) (string, error) {
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(completionUserMessage(query, contextText)),
		},
		Temperature: openai.Float(0.2),
		MaxTokens:   openai.Int(800),
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) SummarizeArticle(ctx context.Context, title, content, link string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(articleSummaryPrompt),
			openai.UserMessage(summaryUserMessage(title, content, link)),
		},
		Temperature: openai.Float(0.5),
		MaxTokens:   openai.Int(800),
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}

func completionUserMessage(query, contextText string) string {
	return fmt.Sprintf("Query: %s\n\nContext: %s", query, contextText)
}

func summaryUserMessage(title, content, link string) string {
	return fmt.Sprintf("Title: %s\n\nContent: %s\n\nURL: %s", title, content, link)
}
