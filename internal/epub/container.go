package epub

const mimetype = "application/epub+zip"

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// Fixed archive paths.
const (
	pathMimetype  = "mimetype"
	pathContainer = "META-INF/container.xml"
	pathOPF       = "content.opf"
	pathNCX       = "toc.ncx"
)

func xhtmlPage(body string) string {
	return "<html><head></head><body>" + body + "</body></html>"
}
