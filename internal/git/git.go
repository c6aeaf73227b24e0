package git

import (
	"os/exec"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// scp-like remote: git@github.com:owner/repo.git
var scpRemote = regexp.MustCompile(`^[\w.-]+@([\w.-]+):(.+)$`)

// RemoteURL returns the browsable URL of the origin remote of the repository
// containing dir.
func RemoteURL(dir string) (string, error) {
	cmd := exec.Command("git", "config", "--get", "remote.origin.url")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", errors.Wrap(err, "git config failed")
	}
	url := NormalizeRemote(string(output))
	if url == "" {
		return "", errors.Newf("no origin remote in %s", dir)
	}
	return url, nil
}

// NormalizeRemote turns ssh, scp-like and git+ remotes into an https URL
// without the .git suffix.
func NormalizeRemote(remote string) string {
	url := strings.TrimSpace(remote)
	if url == "" {
		return ""
	}
	url = strings.TrimPrefix(url, "git+")

	if m := scpRemote.FindStringSubmatch(url); m != nil && !strings.Contains(url, "://") {
		url = "https://" + m[1] + "/" + m[2]
	}
	for _, prefix := range []string{"ssh://", "git://", "http://"} {
		if strings.HasPrefix(url, prefix) {
			url = "https://" + strings.TrimPrefix(url, prefix)
		}
	}
	// drop credentials or ssh users
	if rest, ok := strings.CutPrefix(url, "https://"); ok {
		if at := strings.Index(rest, "@"); at >= 0 && at < strings.Index(rest+"/", "/") {
			rest = rest[at+1:]
		}
		url = "https://" + rest
	}
	url = strings.TrimSuffix(url, "/")
	return strings.TrimSuffix(url, ".git")
}
