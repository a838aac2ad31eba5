package epubgen

// defaultStylesheet is the shared stylesheet linked from every chapter and
// the navigation document. Ported from the converter's historical default
// look: justified paragraphs, bordered h1, boxed code blocks.
const defaultStylesheet = `body {
  font-family: serif;
  line-height: 1.6;
  margin: 2em;
}
h1, h2, h3, h4, h5, h6 {
  color: #333;
  margin-top: 1.5em;
  margin-bottom: 0.5em;
}
h1 {
  font-size: 1.8em;
  border-bottom: 2px solid #333;
  padding-bottom: 0.3em;
}
h2 {
  font-size: 1.5em;
  color: #666;
}
h3 {
  font-size: 1.3em;
}
p {
  margin-bottom: 1em;
  text-align: justify;
}
ul, ol {
  margin-left: 2em;
}
li {
  margin-bottom: 0.5em;
}
img {
  max-width: 100%;
}
code {
  background-color: #f1f3f4;
  color: #c7254e;
  padding: 2px 6px;
  border-radius: 4px;
  font-family: monospace;
  font-size: 0.9em;
  border: 1px solid #e1e4e8;
}
pre {
  background-color: #f8f9fa;
  border: 1px solid #e1e4e8;
  border-radius: 6px;
  padding: 16px;
  margin: 16px 0;
  overflow-x: auto;
  line-height: 1.45;
}
pre code {
  background-color: transparent;
  color: #24292e;
  padding: 0;
  border: none;
  white-space: pre;
}
table {
  border-collapse: collapse;
  margin: 1em 0;
}
th, td {
  border: 1px solid #ddd;
  padding: 0.4em 0.8em;
}
blockquote {
  border-left: 4px solid #ddd;
  margin-left: 0;
  padding-left: 1em;
  color: #666;
}
.missing-image {
  display: inline-block;
  border: 1px dashed #999;
  color: #999;
  padding: 0.2em 0.6em;
  font-style: italic;
}
`
