// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// This package works with any service exposing the OpenAI embeddings API,
// including local servers such as Ollama, LocalAI and vLLM. Authentication
// uses a placeholder token by default, which local services ignore.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithEmbeddingHost("http://localhost:11434"),  // /v1 added automatically
//	    ai.WithEmbeddingModel("all-minilm"),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "sample text")
package openai
