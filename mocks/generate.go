package mocks

//go:generate mockgen -destination=./mock_marker.go -package=mocks github.com/rxtech-lab/argo-tdi/internal/marker Marker
//go:generate mockgen -destination=./mock_notifier.go -package=mocks github.com/rxtech-lab/argo-tdi/internal/notify Notifier
//go:generate mockgen -destination=./mock_pipeline.go -package=mocks github.com/rxtech-lab/argo-tdi/internal/indicator Pipeline
//go:generate mockgen -destination=./mock_quote_source.go -package=mocks github.com/rxtech-lab/argo-tdi/internal/feed QuoteSource
