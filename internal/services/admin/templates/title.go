package templates

import "strings"

// ComposePageTitle appends the app name to title unless it is already there.
func ComposePageTitle(title, appName string) string {
	title = strings.TrimSpace(title)
	appName = strings.TrimSpace(appName)
	switch {
	case title == "":
		return appName
	case appName == "" || strings.HasSuffix(title, "| "+appName):
		return title
	default:
		return title + " | " + appName
	}
}
