package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path"

	"github.com/rs/zerolog/log"
)

const defaultApiUrl = "https://api.github.com"

// Mirror pushes document snapshots to a GitHub repository through the
// contents API. It is a best-effort secondary copy: the local JSON
// files stay authoritative, and every failure here is only logged by
// the callers
type Mirror struct {
	apiUrl string
	token  string
	repo   string // "owner/name"
	user   string // used as the User-Agent, GitHub requires one
	branch string
	client http.Client
}

func NewMirror(token, repo, user, branch string) *Mirror {
	if branch == "" {
		branch = "main"
	}
	return &Mirror{apiUrl: defaultApiUrl, token: token, repo: repo, user: user, branch: branch}
}

// Enabled reports whether the mirror has enough configuration to push.
// A disabled mirror turns every push into a logged no-op
func (mirror *Mirror) Enabled() bool {
	return mirror.token != "" && mirror.repo != "" && mirror.user != ""
}

type contentsResponse struct {
	Sha string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Sha     string `json:"sha,omitempty"`
	Branch  string `json:"branch"`
}

// Push uploads the given content as the new revision of the file. It
// first fetches the current blob sha, then upserts keyed to that sha;
// if the remote moved in between (concurrent external edit), GitHub
// rejects the upsert and the push fails. There is no retry and no
// merge, the next debounced sync will carry the latest local state
func (mirror *Mirror) Push(ctx context.Context, filename string, content []byte, message string) error {

	if !mirror.Enabled() {
		return fmt.Errorf("mirror is not configured, missing token, repo or user")
	}

	sha, err := mirror.currentSha(ctx, filename)
	if err != nil {
		return err
	}

	body, err := json.Marshal(putRequest{
		Message: message,
		Content: base64.StdEncoding.EncodeToString(content),
		Sha:     sha,
		Branch:  mirror.branch,
	})
	if err != nil {
		return fmt.Errorf("could not encode contents request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/contents/%s", mirror.apiUrl, mirror.repo, path.Base(filename))
	request, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("could not create contents request: %w", err)
	}
	mirror.setHeader(request)
	request.Header.Set("Content-Type", "application/json")

	response, err := mirror.client.Do(request)
	if err != nil {
		return fmt.Errorf("could not push %s: %w", filename, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		detail, _ := io.ReadAll(response.Body)
		return fmt.Errorf("push of %s rejected with status %d: %s", filename, response.StatusCode, detail)
	}

	log.Debug().Msg(fmt.Sprintf("Pushed %s to %s@%s", filename, mirror.repo, mirror.branch))
	return nil
}

// currentSha fetches the blob sha of the file on the target branch.
// An empty sha with no error means the file does not exist yet and
// the push will create it
func (mirror *Mirror) currentSha(ctx context.Context, filename string) (string, error) {

	url := fmt.Sprintf("%s/repos/%s/contents/%s?ref=%s", mirror.apiUrl, mirror.repo, path.Base(filename), mirror.branch)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("could not create contents request: %w", err)
	}
	mirror.setHeader(request)

	response, err := mirror.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("could not fetch revision of %s: %w", filename, err)
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
		var contents contentsResponse
		if err := json.NewDecoder(response.Body).Decode(&contents); err != nil {
			return "", fmt.Errorf("could not decode contents response for %s: %w", filename, err)
		}
		return contents.Sha, nil
	case http.StatusNotFound:
		log.Debug().Msg(fmt.Sprintf("File %s does not exist in %s yet, push will create it", filename, mirror.repo))
		return "", nil
	default:
		return "", fmt.Errorf("revision fetch of %s rejected with status %d", filename, response.StatusCode)
	}
}

func (mirror *Mirror) setHeader(request *http.Request) {
	request.Header.Set("Authorization", "token "+mirror.token)
	request.Header.Set("User-Agent", mirror.user)
	request.Header.Set("Accept", "application/vnd.github+json")
}
