package git

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// Errors returned by the go-git adapter.
var (
	// ErrRepositoryNotFound indicates the path is not inside a Git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrNoTags indicates no tag is reachable from HEAD.
	ErrNoTags = errors.New("no tags reachable from HEAD")
)

// GoGitDescriber describes a local checkout by its nearest tag using go-git/v5.
// It backs the --version lookup when ioc-deploy runs from a git checkout.
type GoGitDescriber struct {
	repo   *git.Repository
	path   string
	logger Logger
}

// NewGoGitDescriber opens the repository containing path.
// Parent directories are searched for the .git directory.
// Returns ErrRepositoryNotFound if path is not inside a Git repository.
func NewGoGitDescriber(path string, log Logger) (*GoGitDescriber, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRepositoryNotFound, path)
	}

	return &GoGitDescriber{
		repo:   repo,
		path:   path,
		logger: log,
	}, nil
}

// Describe returns the tag at HEAD, or "<tag>-<distance>-g<short sha>" when
// HEAD is past the nearest tag, in the style of "git describe --tags".
// Returns ErrNoTags if no tag is reachable from HEAD.
func (d *GoGitDescriber) Describe(ctx context.Context) (string, error) {
	head, err := d.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD: %w", err)
	}

	tagsByCommit, err := d.tagsByCommit()
	if err != nil {
		return "", err
	}
	if len(tagsByCommit) == 0 {
		return "", ErrNoTags
	}

	commit, err := d.repo.CommitObject(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to get commit object for HEAD: %w", err)
	}

	var (
		tag      string
		distance int
	)
	iter := object.NewCommitIterCTime(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if name, ok := tagsByCommit[c.Hash]; ok {
			tag = name
			return storer.ErrStop
		}
		distance++
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return "", fmt.Errorf("failed to walk commit history: %w", err)
	}
	if tag == "" {
		return "", ErrNoTags
	}

	d.logger.Debug(ctx, "described checkout", map[string]interface{}{
		"path":     d.path,
		"tag":      tag,
		"distance": distance,
		"head_sha": head.Hash().String(),
	})

	if distance == 0 {
		return tag, nil
	}
	return fmt.Sprintf("%s-%d-g%s", tag, distance, head.Hash().String()[:7]), nil
}

// tagsByCommit maps commit hashes to the tag names pointing at them.
// Annotated tags are peeled to their target commit.
func (d *GoGitDescriber) tagsByCommit() (map[plumbing.Hash]string, error) {
	refs, err := d.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	tags := make(map[plumbing.Hash]string)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		target := ref.Hash()
		if tagObj, tagErr := d.repo.TagObject(ref.Hash()); tagErr == nil {
			target = tagObj.Target
		}
		if _, seen := tags[target]; !seen {
			tags[target] = ref.Name().Short()
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}

	return tags, nil
}
