package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/runoshun/repo-actions/internal/domain"
)

// UpdateSecretsInput contains the parameters for storing repository secrets.
type UpdateSecretsInput struct {
	Secrets string                // Map of secret name -> value
	Type    domain.DocumentFormat // Format of Secrets
	Repo    domain.Repo
}

// UpdateSecretsOutput lists the stored secrets.
type UpdateSecretsOutput struct {
	Names []string // Sorted
}

// UpdateSecrets is the use case for sealing and storing repository secrets.
type UpdateSecrets struct {
	github domain.GitHub
	sealer domain.SecretSealer
	docs   domain.Documents
	io     domain.ActionIO
	logger *slog.Logger
}

// NewUpdateSecrets creates a new UpdateSecrets use case.
func NewUpdateSecrets(
	github domain.GitHub,
	sealer domain.SecretSealer,
	docs domain.Documents,
	io domain.ActionIO,
	logger *slog.Logger,
) *UpdateSecrets {
	return &UpdateSecrets{
		github: github,
		sealer: sealer,
		docs:   docs,
		io:     io,
		logger: logger,
	}
}

// Execute seals every value with the repository public key and stores it.
// Plain and sealed values are masked before anything is sent.
func (uc *UpdateSecrets) Execute(ctx context.Context, in UpdateSecretsInput) (*UpdateSecretsOutput, error) {
	if _, err := domain.ParseDocumentFormat(string(in.Type)); err != nil {
		return nil, err
	}

	secrets, err := uc.parse(in.Type, in.Secrets)
	if err != nil {
		return nil, err
	}
	// Mask everything first so later failures cannot leak values.
	for _, value := range secrets {
		uc.io.SetSecret(value)
	}

	key, err := uc.github.GetPublicKey(ctx, in.Repo)
	if err != nil {
		return nil, fmt.Errorf("get public key: %w", err)
	}

	names := slices.Sorted(maps.Keys(secrets))
	for _, name := range names {
		sealed, err := uc.sealer.Seal(key.Key, []byte(secrets[name]))
		if err != nil {
			return nil, fmt.Errorf("seal %s: %w", name, err)
		}
		uc.io.SetSecret(sealed)

		secret := domain.EncryptedSecret{Name: name, KeyID: key.KeyID, EncryptedValue: sealed}
		if err := uc.github.PutSecret(ctx, in.Repo, secret); err != nil {
			return nil, fmt.Errorf("put secret %s: %w", name, err)
		}
		uc.logger.Info("secret updated", "name", name)
	}
	return &UpdateSecretsOutput{Names: names}, nil
}

// parse decodes the secrets map, converting scalar values to strings.
func (uc *UpdateSecrets) parse(format domain.DocumentFormat, text string) (map[string]string, error) {
	doc, err := uc.docs.Decode(format, text)
	if err != nil {
		return nil, fmt.Errorf("decode secrets: %w", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, &domain.ParseError{Source: "secrets", Err: fmt.Errorf("expected a mapping, got %T", doc)}
	}

	secrets := make(map[string]string, len(m))
	for name, v := range m {
		switch value := v.(type) {
		case string:
			secrets[name] = value
		case bool:
			secrets[name] = strconv.FormatBool(value)
		case int:
			secrets[name] = strconv.Itoa(value)
		case float64:
			secrets[name] = strconv.FormatFloat(value, 'f', -1, 64)
		case nil:
			secrets[name] = ""
		default:
			return nil, &domain.ParseError{Source: "secrets", Field: name, Err: fmt.Errorf("unsupported value type %T", v)}
		}
	}
	return secrets, nil
}
