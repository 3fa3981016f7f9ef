// Package gitscan implements the git-history scanning driver: locating a
// repository, walking its commits, diffing them, and aggregating findings.
package gitscan

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"

	"github.com/opsource/secrethog/pkg/scanner"
)

// LocatorOptions carries the inputs the Repository Locator needs beyond
// the bare path/URL: SSH credential material and a scratch directory for
// clones.
type LocatorOptions struct {
	SSHKeyPath     string
	SSHKeyPassword string
	ScratchDir     string
}

// OpenRepository resolves path to an opened repository, dispatching on its
// URL scheme: http/https and file clone directly, ssh/git clone with SSH
// auth, and a bare relative path tries a local open before falling back to
// SSH. Failures are returned as errors rather than raised as panics.
func OpenRepository(path string, opts LocatorOptions) (*git.Repository, error) {
	u, err := url.Parse(path)
	if err != nil || u.Scheme == "" {
		// No scheme: treat path as a relative filesystem path first, then
		// fall back to SSH using the substring before the first '@'.
		scanner.Log.Infof("locator: %q looks like a relative path, trying local open first", path)
		repo, openErr := git.PlainOpen(path)
		if openErr == nil {
			return repo, nil
		}
		username := "git"
		if i := strings.Index(path, "@"); i >= 0 {
			username = path[:i]
		}
		return cloneOverSSH(path, username, opts)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		scanner.Log.Infof("locator: cloning %s over HTTPS", path)
		return cloneTo(opts.ScratchDir, &git.CloneOptions{URL: path})
	case "file":
		scanner.Log.Infof("locator: cloning %s from local URL", path)
		return cloneTo(opts.ScratchDir, &git.CloneOptions{URL: path})
	case "ssh", "git":
		username := u.User.Username()
		if username == "" {
			username = "git"
		}
		scanner.Log.Infof("locator: cloning %s over SSH as %s", path, username)
		return cloneOverSSH(path, username, opts)
	default:
		return nil, fmt.Errorf("locator: %q: please include the username with `git@`", u.Scheme)
	}
}

func cloneTo(scratchDir string, cloneOpts *git.CloneOptions) (*git.Repository, error) {
	dir, err := scratchDirFor(scratchDir)
	if err != nil {
		return nil, err
	}
	repo, err := git.PlainClone(dir, false, cloneOpts)
	if err != nil {
		return nil, fmt.Errorf("locator: cloning %s: %w", cloneOpts.URL, err)
	}
	return repo, nil
}

func cloneOverSSH(rawURL, username string, opts LocatorOptions) (*git.Repository, error) {
	auth, err := sshAuth(username, opts)
	if err != nil {
		return nil, fmt.Errorf("locator: obtaining SSH credentials: %w", err)
	}
	return cloneTo(opts.ScratchDir, &git.CloneOptions{URL: rawURL, Auth: auth})
}

func sshAuth(username string, opts LocatorOptions) (transport.AuthMethod, error) {
	if opts.SSHKeyPath != "" {
		scanner.Log.Debugf("locator: using SSH key at %s", opts.SSHKeyPath)
		return ssh.NewPublicKeysFromFile(username, opts.SSHKeyPath, opts.SSHKeyPassword)
	}
	scanner.Log.Debugf("locator: falling back to the ambient SSH agent")
	return ssh.NewSSHAgentAuth(username)
}

// scratchDirFor returns base if non-empty, otherwise a fresh temporary
// directory. Scratch directories are owned by the driver and cleaned up
// on normal exit; on abnormal termination they may leak.
func scratchDirFor(base string) (string, error) {
	if base != "" {
		if err := os.MkdirAll(base, 0o755); err != nil {
			return "", fmt.Errorf("locator: creating scratch directory %s: %w", base, err)
		}
		return base, nil
	}
	dir, err := os.MkdirTemp("", "secrethog-clone-*")
	if err != nil {
		return "", fmt.Errorf("locator: creating scratch directory: %w", err)
	}
	return dir, nil
}
