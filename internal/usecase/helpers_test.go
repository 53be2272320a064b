package usecase

import (
	"io"
	"log/slog"

	"github.com/runoshun/repo-actions/internal/domain"
)

var testRepo = domain.RepoContext{ServerURL: "https://github.com", Repo: domain.Repo{Owner: "o", Name: "r"}}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
