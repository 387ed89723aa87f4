package viewtypes

// ============================================================================
// SHARED CSS CLASS CONSTANTS
// Reusable Bootstrap class strings used across multiple template files.
// ============================================================================

// PageHeading is the main h1 heading style for top-level pages.
var PageHeading = "h3 mb-4"

// SubHeading is for secondary headings (h2 level) within pages.
var SubHeading = "h5 mb-3"

// InputClass is the standard text input styling. Field error binding relies
// on the form-control class.
var InputClass = "form-control form-control-sm"

// LabelClass is the label next to an InputClass field.
var LabelClass = "col-sm-3 col-form-label col-form-label-sm"

// ErrorSlotClass is the element that shows a field's error message.
var ErrorSlotClass = "invalid-feedback"

// PrimaryButton is the main action of a form.
var PrimaryButton = "btn btn-sm btn-primary"

// DangerButtonSm is a small destructive action, e.g. delete in a table row.
var DangerButtonSm = "btn btn-sm btn-outline-danger"

// CardClass wraps a page section.
var CardClass = "card mb-4"
