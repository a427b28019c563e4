package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Version is the build version, set with -ldflags "-X ...cli.Version=x.y.z".
var Version = "0.1.0"

// githubAPI is the releases API root; tests replace it with a local server.
var githubAPI = "https://api.github.com"

// platform used to choose a release asset
var goos, goarch = runtime.GOOS, runtime.GOARCH

var semverRe = regexp.MustCompile(`v?\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// parseVersion accepts versions with or without a leading "v".
func parseVersion(s string) (semver.Version, error) {
	return semver.Parse(strings.TrimPrefix(strings.TrimSpace(s), "v"))
}

// detectLatest queries the GitHub releases of repo and returns the highest
// published, non-prerelease version. Tags are matched loosely so names like
// "filterlab-v1.2.0" still count. It returns (nil, nil) when nothing matches.
func detectLatest(ctx context.Context, repo string) (*selfupdate.Release, error) {
	apiURL := fmt.Sprintf("%s/repos/%s/releases", githubAPI, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var releases []struct {
		TagName    string `json:"tag_name"`
		Name       string `json:"name"`
		Draft      bool   `json:"draft"`
		Prerelease bool   `json:"prerelease"`
		HTMLURL    string `json:"html_url"`
		Assets     []struct {
			Name               string `json:"name"`
			BrowserDownloadURL string `json:"browser_download_url"`
		} `json:"assets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode github releases: %w", err)
	}

	var candidates []*selfupdate.Release
	for _, r := range releases {
		if r.Draft || r.Prerelease {
			continue
		}
		match := semverRe.FindString(r.TagName)
		if match == "" {
			match = semverRe.FindString(r.Name)
		}
		v, err := parseVersion(match)
		if match == "" || err != nil {
			continue
		}
		// prefer an asset built for this platform, else the first one
		assetURL := ""
		for _, a := range r.Assets {
			if assetURL == "" || matchesPlatform(a.Name) {
				assetURL = a.BrowserDownloadURL
			}
			if matchesPlatform(a.Name) {
				break
			}
		}
		candidates = append(candidates, &selfupdate.Release{
			Version:  v,
			AssetURL: assetURL,
			URL:      r.HTMLURL,
		})
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GT(candidates[j].Version)
	})
	return candidates[0], nil
}

func matchesPlatform(asset string) bool {
	name := strings.ToLower(asset)
	return strings.Contains(name, goos) && strings.Contains(name, goarch)
}

// CheckForUpdates compares Version with the latest release of repo and, after
// confirmation, replaces the running executable.
func CheckForUpdates(ctx context.Context, repo string, p *prompter) error {
	out := p.out
	fmt.Fprintf(out, "Current version: %s\n", Version)
	latest, err := detectLatest(ctx, repo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	current, err := parseVersion(Version)
	if err != nil {
		fmt.Fprintf(out, "warning: could not parse current version %q: %v\n", Version, err)
	} else if latest.Version.LTE(current) {
		fmt.Fprintf(out, "You are already running the latest version: %s.\n", current)
		return nil
	}

	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset.\n", latest.Version)
		if latest.URL != "" {
			fmt.Fprintf(out, "Download it from %s\n", latest.URL)
		}
		return nil
	}

	ok, err := p.confirm(fmt.Sprintf("A new version (%s) is available. Update now? (y/N): ", latest.Version))
	if err != nil {
		return fmt.Errorf("failed reading input: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "Update cancelled.")
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	fmt.Fprintln(out, "Updating...")
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return nil
}
