// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package notebook

// ColabSetupCells returns the preamble the published tutorial notebooks carry
// before their first foreign-language cell: install the rpy2 cell magic,
// mount Google Drive, then a separator. Inserted at most once per notebook.
func ColabSetupCells() []Cell {
	return []Cell{
		{
			Type:   CellMarkdown,
			Source: []string{"## Install rpy2"},
		},
		{
			Type: CellCode,
			Source: []string{
				"!pip uninstall rpy2 -y -q",
				"!pip install rpy2==3.5.1 -q",
				"%load_ext rpy2.ipython",
			},
		},
		{
			Type:   CellMarkdown,
			Source: []string{"## Mount Google Drive"},
		},
		{
			Type: CellCode,
			Source: []string{
				"from google.colab import drive",
				"drive.mount('/content/drive')",
			},
		},
		{
			Type:   CellMarkdown,
			Source: []string{"", "---", ""},
		},
	}
}
