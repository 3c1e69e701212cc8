// Package i18n resolves the admin UI language and hands out message printers
// backed by the embedded catalog.
package i18n
