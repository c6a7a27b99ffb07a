// Package services holds the import pipeline behind the HTTP and CLI surfaces.
//
// Services defined in this package:
// - ImportService: previews document text and commits reviewed rows
// - NotificationService: records exam notifications for enrolled students
// - Resolver: per-run resolve-or-create of modules, venues, lecturers and programmes
package services
