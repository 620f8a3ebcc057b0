// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Slide geometry in EMU (16:9, 12192000 x 6858000).
const (
	slideCX = 12192000
	slideCY = 6858000

	marginX = 838200
	titleY  = 365125
	titleCY = 1325563
	bodyY   = 1825625
	bodyCY  = 4351338
	gutter  = 228600
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Namespace attributes shared by the drawing parts.
const nsAttrs = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
	`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
	`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`

// WriteTo serializes the deck as a pptx package. It implements io.WriterTo.
func (d *Deck) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		body func() string
	}{
		{"[Content_Types].xml", d.contentTypes},
		{"_rels/.rels", rootRels},
		{"ppt/presentation.xml", d.presentationXML},
		{"ppt/_rels/presentation.xml.rels", d.presentationRels},
		{"ppt/slideMasters/slideMaster1.xml", masterXML},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", masterRels},
		{"ppt/slideLayouts/slideLayout1.xml", layoutXML},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", layoutRels},
		{"ppt/theme/theme1.xml", themeXML},
	}
	for _, part := range parts {
		if err := addPart(zw, part.name, part.body()); err != nil {
			return 0, err
		}
	}

	for i, s := range d.slides {
		n := i + 1
		if err := addPart(zw, fmt.Sprintf("ppt/slides/slide%d.xml", n), slideXML(s)); err != nil {
			return 0, err
		}
		if err := addPart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels(s, n)); err != nil {
			return 0, err
		}
		for pi, pic := range pictures(s) {
			name := fmt.Sprintf("ppt/media/image%d_%d.%s", n, pi+1, imageExt(pic.Data))
			f, err := zw.Create(name)
			if err != nil {
				return 0, fmt.Errorf("pptx media %s: %w", name, err)
			}
			if _, err := f.Write(pic.Data); err != nil {
				return 0, fmt.Errorf("pptx media %s: %w", name, err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("pptx close: %w", err)
	}
	return buf.WriteTo(w)
}

// Bytes renders the deck into memory.
func (d *Deck) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addPart(zw *zip.Writer, name, body string) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("pptx part %s: %w", name, err)
	}
	if _, err := io.WriteString(f, body); err != nil {
		return fmt.Errorf("pptx part %s: %w", name, err)
	}
	return nil
}

// pictures returns the slide's picture shapes in order.
func pictures(s *Slide) []*Picture {
	var pics []*Picture
	for _, sh := range s.Shapes {
		if p, ok := sh.(*Picture); ok {
			pics = append(pics, p)
		}
	}
	return pics
}

// imageExt sniffs the media extension from magic bytes; jpeg is the
// fallback since that is what the image search serves.
func imageExt(data []byte) string {
	if len(data) >= 4 && data[0] == 0x89 && data[1] == 0x50 && data[2] == 0x4E && data[3] == 0x47 {
		return "png"
	}
	if len(data) >= 3 && data[0] == 0x47 && data[1] == 0x49 && data[2] == 0x46 {
		return "gif"
	}
	return "jpeg"
}

// esc escapes text for inclusion in XML character data and attributes.
func esc(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

func (d *Deck) contentTypes() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Default Extension="jpeg" ContentType="image/jpeg"/>`)
	b.WriteString(`<Default Extension="png" ContentType="image/png"/>`)
	b.WriteString(`<Default Extension="gif" ContentType="image/gif"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>`)
	b.WriteString(`<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func rootRels() string {
	return xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>` +
		`</Relationships>`
}

func (d *Deck) presentationXML() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:presentation %s>`, nsAttrs)
	b.WriteString(`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`)
	b.WriteString(`<p:sldIdLst>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	b.WriteString(`</p:sldIdLst>`)
	fmt.Fprintf(&b, `<p:sldSz cx="%d" cy="%d"/>`, slideCX, slideCY)
	b.WriteString(`<p:notesSz cx="6858000" cy="9144000"/>`)
	b.WriteString(`</p:presentation>`)
	return b.String()
}

func (d *Deck) presentationRels() string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range d.slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, i+2, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

// emptySpTree is the mandatory empty shape-tree group of master and layout.
const emptySpTree = `<p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr></p:spTree>`

func masterXML() string {
	return xmlHeader +
		fmt.Sprintf(`<p:sldMaster %s>`, nsAttrs) +
		`<p:cSld>` + emptySpTree + `</p:cSld>` +
		`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
		`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>` +
		`</p:sldMaster>`
}

func masterRels() string {
	return xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
		`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>` +
		`</Relationships>`
}

func layoutXML() string {
	return xmlHeader +
		fmt.Sprintf(`<p:sldLayout %s type="blank">`, nsAttrs) +
		`<p:cSld>` + emptySpTree + `</p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>` +
		`</p:sldLayout>`
}

func layoutRels() string {
	return xmlHeader +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>` +
		`</Relationships>`
}

func themeXML() string {
	return xmlHeader +
		`<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="DeckGen">` +
		`<a:themeElements>` +
		`<a:clrScheme name="DeckGen">` +
		`<a:dk1><a:srgbClr val="000000"/></a:dk1><a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>` +
		`<a:dk2><a:srgbClr val="44546A"/></a:dk2><a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
		`<a:accent1><a:srgbClr val="4472C4"/></a:accent1><a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
		`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3><a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
		`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5><a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
		`<a:hlink><a:srgbClr val="0563C1"/></a:hlink><a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
		`</a:clrScheme>` +
		`<a:fontScheme name="DeckGen">` +
		`<a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
		`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>` +
		`</a:fontScheme>` +
		`<a:fmtScheme name="DeckGen">` +
		`<a:fillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:fillStyleLst>` +
		`<a:lnStyleLst><a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln><a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln></a:lnStyleLst>` +
		`<a:effectStyleLst><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle><a:effectStyle><a:effectLst/></a:effectStyle></a:effectStyleLst>` +
		`<a:bgFillStyleLst><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:bgFillStyleLst>` +
		`</a:fmtScheme>` +
		`</a:themeElements>` +
		`</a:theme>`
}

// frame is a shape rectangle in EMU.
type frame struct {
	x, y, cx, cy int
}

// layoutFrames computes one frame per shape: the title (if any) spans the
// top band, the remaining shapes split the body area into equal columns.
func layoutFrames(s *Slide) map[Shape]frame {
	frames := make(map[Shape]frame, len(s.Shapes))

	var body []Shape
	for _, sh := range s.Shapes {
		if box, ok := sh.(*TextBox); ok && box.Role == RoleTitle {
			frames[sh] = frame{marginX, titleY, slideCX - 2*marginX, titleCY}
			continue
		}
		body = append(body, sh)
	}

	n := len(body)
	if n == 0 {
		return frames
	}
	totalW := slideCX - 2*marginX
	colW := (totalW - gutter*(n-1)) / n
	for i, sh := range body {
		frames[sh] = frame{marginX + i*(colW+gutter), bodyY, colW, bodyCY}
	}
	return frames
}

func slideXML(s *Slide) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	fmt.Fprintf(&b, `<p:sld %s>`, nsAttrs)
	b.WriteString(`<p:cSld>`)

	if s.Background != nil {
		fmt.Fprintf(&b, `<p:bg><p:bgPr><a:solidFill><a:srgbClr val="%s"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>`, s.Background.Hex())
	}

	b.WriteString(`<p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>`)
	b.WriteString(`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`)

	frames := layoutFrames(s)
	shapeID := 2
	picRel := 2 // rId1 is the slide layout
	for _, sh := range s.Shapes {
		fr := frames[sh]
		switch v := sh.(type) {
		case *TextBox:
			writeTextBox(&b, v, fr, shapeID)
		case *Picture:
			writePicture(&b, v, fr, shapeID, picRel)
			picRel++
		}
		shapeID++
	}

	b.WriteString(`</p:spTree></p:cSld>`)
	b.WriteString(`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>`)
	b.WriteString(`</p:sld>`)
	return b.String()
}

func writeTextBox(b *strings.Builder, box *TextBox, fr frame, id int) {
	fmt.Fprintf(b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr/></p:nvSpPr>`, id, esc(box.Name))
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>`, fr.x, fr.y, fr.cx, fr.cy)

	b.WriteString(`<p:txBody>`)
	if box.Vertical {
		b.WriteString(`<a:bodyPr vert="eaVert" wrap="square"/>`)
	} else {
		b.WriteString(`<a:bodyPr wrap="square"/>`)
	}
	b.WriteString(`<a:lstStyle/>`)

	paras := box.Paragraphs
	if len(paras) == 0 {
		paras = []string{""}
	}
	for _, text := range paras {
		b.WriteString(`<a:p><a:r>`)
		b.WriteString(`<a:rPr lang="en-US"`)
		if box.SizePt > 0 {
			fmt.Fprintf(b, ` sz="%d"`, box.SizePt*100)
		}
		b.WriteString(`>`)
		if box.Color != nil {
			fmt.Fprintf(b, `<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, box.Color.Hex())
		}
		if box.Font != "" {
			fmt.Fprintf(b, `<a:latin typeface="%s"/>`, esc(box.Font))
		}
		b.WriteString(`</a:rPr>`)
		fmt.Fprintf(b, `<a:t>%s</a:t>`, esc(text))
		b.WriteString(`</a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp>`)
}

func writePicture(b *strings.Builder, pic *Picture, fr frame, id, rel int) {
	fmt.Fprintf(b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`, id, esc(pic.Name))
	fmt.Fprintf(b, `<p:blipFill><a:blip r:embed="rId%d"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>`, rel)
	fmt.Fprintf(b, `<p:spPr><a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`, fr.x, fr.y, fr.cx, fr.cy)
}

func slideRels(s *Slide, n int) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`)
	for i, pic := range pictures(s) {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="../media/image%d_%d.%s"/>`, i+2, n, i+1, imageExt(pic.Data))
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}
