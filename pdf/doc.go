// Package pdf exports scanned pages to PDF and renders existing PDFs for
// preview.
//
// Export is built on go-pdf/fpdf and places one full-page image per page.
// Preview uses MuPDF through go-fitz.
package pdf
