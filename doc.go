// Package poster batches Reddit submissions behind a safety layer.
//
// A Controller runs a batch of post records through validation, a sliding
// window rate limiter, jittered inter-post delays, and a per-session quota
// before anything reaches the Reddit API. Individual failures never abort
// the batch; every record produces a SubmissionResult, and a Recorder can
// persist the batch outcome to disk.
//
// Basic usage:
//
//	cfg := poster.DefaultConfig()
//	cfg.ClientID = os.Getenv("CLIENT_ID")
//	cfg.ClientSecret = os.Getenv("CLIENT_SECRET")
//	cfg.Username = "myuser"
//	cfg.Password = "mypassword"
//
//	api, err := poster.NewRedditAPI(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ctrl := poster.NewController(cfg, api, types.Live)
//	results, err := ctrl.Run(ctx, posts, nil)
//
// In dry-run mode (types.DryRun) the controller exercises the full pacing
// pipeline but never calls the API, so a batch can be rehearsed without
// credentials by passing a nil API.
package poster
