package revision

import (
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// GitCommitFor returns the HEAD commit hash of the repository containing
// the given config file. It returns "" when the file is not inside a git
// working tree, or when HEAD cannot be resolved (empty repository).
func GitCommitFor(configPath string) string {
	dir := filepath.Dir(configPath)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}

	head, err := repo.Head()
	if err != nil {
		return ""
	}

	return head.Hash().String()
}
