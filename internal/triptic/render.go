package triptic

import (
	"context"
	"fmt"
)

// uploadPrompt is recorded on versions created from raw uploads, where no
// generation prompt exists.
const uploadPrompt = "Uploaded image"

// Regenerate renders a new image for a slot and appends it to the history as
// the current version. An empty prompt reuses the newest version's prompt.
// Returns the new version's content reference.
func (s *Service) Regenerate(ctx context.Context, groupID string, slot SlotName, prompt string) (string, error) {
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return "", err
	}

	target := group.Slot(slot)
	if prompt == "" {
		if len(target.Versions) == 0 {
			return "", fmt.Errorf("prompt is required for a slot with no versions: %w", ErrInvalidArgument)
		}
		prompt = target.Versions[len(target.Versions)-1].Prompt
	}

	data, ext, err := s.renderer.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating image: %w", err)
	}

	return s.appendRendered(group, slot, data, ext, prompt)
}

// StartRegenerate launches Regenerate on a detached worker goroutine and
// returns a job token immediately. The caller polls JobStatus; there is no
// cancellation, and the job entry remains until process restart.
func (s *Service) StartRegenerate(groupID string, slot SlotName, prompt string) (string, error) {
	// Validate up front so an unknown group fails the request, not the job.
	if _, err := s.store.LoadGroup(groupID); err != nil {
		return "", err
	}

	token := s.idgen.New()
	s.jobs.Begin(token, groupID, slot)
	s.logger.Info("render job started", "job", token, "group", groupID, "slot", slot)

	go func() {
		contentRef, err := s.Regenerate(context.Background(), groupID, slot, prompt)
		if err != nil {
			s.logger.Error("render job failed", "job", token, "error", err)
			s.jobs.Fail(token, err)
			return
		}
		s.jobs.Complete(token, contentRef)
		s.logger.Info("render job complete", "job", token)
	}()

	return token, nil
}

// JobStatus returns the status of a background render job by token.
func (s *Service) JobStatus(token string) (Job, error) {
	return s.jobs.Get(token)
}

// Edit renders an edit of the slot's current image with the prompt and
// appends the result as a new current version.
func (s *Service) Edit(ctx context.Context, groupID string, slot SlotName, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("edit prompt is required: %w", ErrInvalidArgument)
	}

	group, base, err := s.currentBytes(groupID, slot)
	if err != nil {
		return "", err
	}

	data, ext, err := s.renderer.Edit(ctx, prompt, base)
	if err != nil {
		return "", fmt.Errorf("editing image: %w", err)
	}

	return s.appendRendered(group, slot, data, ext, prompt)
}

// Flip mirrors the slot's current image and appends the result as a new
// current version, keeping the prompt of the source version.
func (s *Service) Flip(ctx context.Context, groupID string, slot SlotName) (string, error) {
	group, base, err := s.currentBytes(groupID, slot)
	if err != nil {
		return "", err
	}

	data, ext, err := s.renderer.Flip(ctx, base)
	if err != nil {
		return "", fmt.Errorf("flipping image: %w", err)
	}

	prompt := group.Slot(slot).CurrentVersion().Prompt
	return s.appendRendered(group, slot, data, ext, prompt)
}

// Upload stores caller-provided bytes and appends them as a new current
// version.
func (s *Service) Upload(groupID string, slot SlotName, data []byte, ext string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("upload data is empty: %w", ErrInvalidArgument)
	}
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return "", err
	}
	return s.appendRendered(group, slot, data, ext, uploadPrompt)
}

// currentBytes loads a group and fetches the bytes of a slot's current
// version.
func (s *Service) currentBytes(groupID string, slot SlotName) (*AssetGroup, []byte, error) {
	group, err := s.store.LoadGroup(groupID)
	if err != nil {
		return nil, nil, err
	}
	cur := group.Slot(slot).CurrentVersion()
	if cur == nil {
		return nil, nil, fmt.Errorf("slot %s/%s has no versions: %w", groupID, slot, ErrStateViolation)
	}
	base, err := s.blobs.Fetch(cur.ContentRef)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching current content: %w", err)
	}
	return group, base, nil
}

// appendRendered persists rendered bytes to the blob store, appends the new
// version as current, and saves the group. Returns the content reference.
func (s *Service) appendRendered(group *AssetGroup, slot SlotName, data []byte, ext, prompt string) (string, error) {
	contentRef, err := s.blobs.Store(data, ext)
	if err != nil {
		return "", fmt.Errorf("storing content: %w", err)
	}

	group.Slot(slot).Append(Version{
		ContentRef: contentRef,
		Prompt:     prompt,
		ID:         s.idgen.New(),
		CreatedAt:  s.clock.Now(),
	}, true)

	if err := s.store.SaveGroup(group); err != nil {
		return "", fmt.Errorf("saving group: %w", err)
	}

	s.logger.Info("version added", "group", group.ID, "slot", slot, "content", contentRef)
	return contentRef, nil
}
