package catalog

import (
	"context"
	"fmt"
	"sync"

	"bookclub/internal/entity"
)

// Source is one side of the merge: a fetch that either settles with books
// or rejects.
type Source func(ctx context.Context) ([]entity.Book, error)

// Warning reports a source that failed while the other still delivered.
type Warning struct {
	Source  string `json:"source"`
	Message string `json:"message"`
}

// Merged is the join result over the two sources.
type Merged struct {
	Books    []entity.Book `json:"books"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// FetchMerged issues both fetches concurrently and waits for both to
// settle. One source failing degrades to the other's subset plus a
// source-tagged warning; only both failing is an error. The merged order
// is always local first.
func FetchMerged(ctx context.Context, local, remote Source) (Merged, error) {
	var (
		wg                    sync.WaitGroup
		localBooks, remoteBks []entity.Book
		localErr, remoteErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		localBooks, localErr = local(ctx)
	}()
	go func() {
		defer wg.Done()
		remoteBks, remoteErr = remote(ctx)
	}()
	wg.Wait()

	if localErr != nil && remoteErr != nil {
		return Merged{}, fmt.Errorf("both catalog sources failed: local: %v; remote: %v", localErr, remoteErr)
	}

	var warnings []Warning
	if localErr != nil {
		warnings = append(warnings, Warning{Source: entity.SourceLocal, Message: localErr.Error()})
	}
	if remoteErr != nil {
		warnings = append(warnings, Warning{Source: entity.SourceRemote, Message: remoteErr.Error()})
	}

	return Merged{Books: Merge(localBooks, remoteBks), Warnings: warnings}, nil
}
