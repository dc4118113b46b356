package mpremote

import (
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/upy-labs/upy/internal/install"
)

// defaultTarget is where mip installs when no target is given.
const defaultTarget = "/lib"

var (
	githubRepoURL = regexp.MustCompile(`^https?://(?:www\.)?github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	hasScheme     = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)
)

// ConvertGitHubURL rewrites a GitHub repository URL into mip's
// "github:user/repo" form. Other references are returned unchanged.
func ConvertGitHubURL(ref string) string {
	m := githubRepoURL.FindStringSubmatch(ref)
	if m == nil {
		return ref
	}
	return "github:" + m[1] + "/" + m[2]
}

// PackageAndInstall installs reference on the board at port with mip. A
// descriptor override that lists urls or deps replaces the package.json of
// the source: each listed file and dependency is installed on its own.
func (c *Client) PackageAndInstall(ctx context.Context, port, reference string, opts install.PackageOptions) error {
	reference = ConvertGitHubURL(reference)
	if !listsContents(opts.Descriptor) {
		_, err := c.exec(ctx, mipArgs(port, opts.Target, withVersion(reference, opts.Version))...)
		return err
	}

	steps, err := expandDescriptor(reference, opts)
	if err != nil {
		return err
	}
	for _, s := range steps {
		if _, err := c.exec(ctx, mipArgs(port, s.target, s.source)...); err != nil {
			return fmt.Errorf("installing %s: %w", s.source, err)
		}
	}
	return nil
}

func mipArgs(port, target, source string) []string {
	args := []string{"connect", port, "mip", "install"}
	if target != "" {
		args = append(args, "--target="+target)
	}
	return append(args, source)
}

// listsContents reports whether descriptor names files or dependencies.
// Other override keys such as runtime do not replace package.json.
func listsContents(descriptor map[string]any) bool {
	_, urls := descriptor["urls"]
	_, deps := descriptor["deps"]
	return urls || deps
}

func withVersion(ref, version string) string {
	if version == "" || version == "latest" || !pinnable(ref) {
		return ref
	}
	return ref + "@" + version
}

// pinnable reports whether mip accepts an @version suffix on ref. Plain
// http(s) file URLs are fetched as is.
func pinnable(ref string) bool {
	if strings.HasPrefix(ref, "github:") || strings.HasPrefix(ref, "gitlab:") {
		return true
	}
	return !hasScheme.MatchString(ref)
}

type mipStep struct {
	source string
	target string
}

// expandDescriptor turns a package.json style override into mip installs.
// "urls" entries are [destination, source] pairs; "deps" entries are
// [name, version] pairs or bare names.
func expandDescriptor(reference string, opts install.PackageOptions) ([]mipStep, error) {
	base := opts.Target
	if base == "" {
		base = defaultTarget
	}

	var steps []mipStep

	urls, err := pairs(opts.Descriptor["urls"])
	if err != nil {
		return nil, fmt.Errorf("descriptor urls: %w", err)
	}
	for _, u := range urls {
		dest, src := u[0], u[1]
		if src == "" {
			src = dest
		}
		target := base
		if dir := path.Dir(dest); dir != "." && dir != "/" {
			target = path.Join(base, dir)
		}
		steps = append(steps, mipStep{
			source: withVersion(resolveSource(reference, src), opts.Version),
			target: target,
		})
	}

	deps, err := pairs(opts.Descriptor["deps"])
	if err != nil {
		return nil, fmt.Errorf("descriptor deps: %w", err)
	}
	for _, d := range deps {
		steps = append(steps, mipStep{
			source: withVersion(ConvertGitHubURL(d[0]), d[1]),
			target: opts.Target,
		})
	}
	if len(steps) == 0 {
		return nil, errors.New("descriptor lists no files or dependencies")
	}
	return steps, nil
}

// resolveSource resolves a relative descriptor source against reference.
func resolveSource(reference, src string) string {
	if hasScheme.MatchString(src) {
		return src
	}
	base := reference
	if !strings.Contains(base, "://") {
		base, _, _ = strings.Cut(base, "@")
	}
	base = strings.TrimSuffix(base, "/")
	if strings.HasSuffix(strings.ToLower(base), ".json") {
		if i := strings.LastIndex(base, "/"); i >= 0 {
			base = base[:i]
		}
	}
	return base + "/" + strings.TrimPrefix(src, "/")
}

// pairs reads a list whose entries are two-element lists or single strings.
func pairs(v any) ([][2]string, error) {
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}

	out := make([][2]string, 0, len(list))
	for i, item := range list {
		switch e := item.(type) {
		case string:
			out = append(out, [2]string{e, ""})
		case []any:
			if len(e) == 0 || len(e) > 2 {
				return nil, fmt.Errorf("entry %d: expected 1 or 2 elements, got %d", i, len(e))
			}
			var p [2]string
			for j, part := range e {
				s, ok := part.(string)
				if !ok {
					s = fmt.Sprint(part)
				}
				p[j] = s
			}
			out = append(out, p)
		default:
			return nil, fmt.Errorf("entry %d: unexpected %T", i, item)
		}
	}
	return out, nil
}
