// Package recruiter provides an embedded Go client for the recruiting
// service: candidate intake, semantic search, triage, and job postings,
// wired directly to Redis and an OpenAI-compatible LLM provider without
// going through the HTTP API.
//
//	client, _ := recruiter.New(ctx,
//	    recruiter.WithRedis("localhost:6379", ""),
//	    recruiter.WithLLM(apiKey, "", "gpt-4o-mini", "text-embedding-3-small", 1024),
//	)
//	defer client.Close()
//
//	cand, _ := client.Apply(ctx, recruiter.ApplyRequest{
//	    Name:        "Jane Doe",
//	    Email:       "jane@example.com",
//	    LinkedinURL: "https://linkedin.com/in/janedoe",
//	    Resume:      pdfBytes,
//	})
//	matches, _ := client.Search(ctx, "senior golang engineer", 5)
package recruiter
