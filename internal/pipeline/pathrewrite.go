package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative img[src] and a[href] references in
// an HTML fragment against sourceDir and replaces them with file:// URLs.
//
// The assembled document is loaded on a blank page, so a Markdown image like
// ![](img/logo.png) has no base to resolve against otherwise. URLs with a
// scheme, anchors, absolute paths, and references escaping sourceDir are left
// untouched. When sourceDir is empty or nothing needs rewriting the fragment
// is returned as is.
func RewriteRelativePaths(fragment, sourceDir string) (string, error) {
	if sourceDir == "" || !strings.Contains(fragment, "<") {
		return fragment, nil
	}

	base, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}

	changed := false
	for _, n := range nodes {
		if rewriteTree(n, base) {
			changed = true
		}
	}
	if !changed {
		return fragment, nil
	}

	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

// refAttr maps elements to the attribute holding their local reference.
var refAttr = map[atom.Atom]string{
	atom.Img: "src",
	atom.A:   "href",
}

func rewriteTree(n *html.Node, base string) bool {
	changed := false
	if n.Type == html.ElementNode {
		if key, ok := refAttr[n.DataAtom]; ok {
			for i := range n.Attr {
				if n.Attr[i].Key != key {
					continue
				}
				if u, ok := localFileURL(n.Attr[i].Val, base); ok {
					n.Attr[i].Val = u
					changed = true
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteTree(c, base) {
			changed = true
		}
	}
	return changed
}

// localFileURL returns the file:// URL for ref when ref is a relative path
// that stays inside base. ref is an href as rendered, so its path is
// percent-decoded before it touches the filesystem; query and fragment are
// carried over.
func localFileURL(ref, base string) (string, bool) {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil || u.Scheme != "" || u.Opaque != "" || u.Path == "" {
		return "", false
	}
	if filepath.IsAbs(u.Path) || strings.HasPrefix(u.Path, "/") || filepath.VolumeName(u.Path) != "" {
		return "", false
	}

	target := filepath.Join(base, filepath.FromSlash(u.Path))
	rel, err := filepath.Rel(base, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}

	out := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(target),
		RawQuery: u.RawQuery,
		Fragment: u.Fragment,
	}
	if !strings.HasPrefix(out.Path, "/") {
		out.Path = "/" + out.Path
	}
	return out.String(), true
}
