package utils

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
)

// ZipEntry is one in-memory file destined for an archive.
type ZipEntry struct {
	Path    string
	Content []byte
}

// WriteZip writes entries into a new archive at savePath.
func WriteZip(savePath string, entries []ZipEntry) error {
	zipFile, err := os.Create(savePath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	return WriteZipTo(zipFile, entries)
}

// WriteZipTo streams entries as a zip archive into w.
func WriteZipTo(w io.Writer, entries []ZipEntry) error {
	zipWriter := zip.NewWriter(w)
	for _, entry := range entries {
		if err := addBytesToZip(zipWriter, entry.Path, entry.Content, zip.Deflate); err != nil {
			return err
		}
	}
	return zipWriter.Close()
}

// ZipDir archives every regular file under dirPath, keeping paths relative
// to dirPath.
func ZipDir(dirPath string, savePath string) error {
	zipFile, err := os.Create(savePath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zipWriter := zip.NewWriter(zipFile)

	if err := addDirContentToZip(zipWriter, dirPath, zip.Deflate); err != nil {
		zipWriter.Close()
		return err
	}

	return zipWriter.Close()
}

func addBytesToZip(zipWriter *zip.Writer, relPath string, content []byte, method uint16) error {
	header := &zip.FileHeader{
		Name:   filepath.ToSlash(relPath),
		Method: method,
	}
	writer, err := zipWriter.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = writer.Write(content)
	return err
}

func addDirContentToZip(zipWriter *zip.Writer, dirPath string, method uint16) error {
	return filepath.Walk(dirPath, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(dirPath, filePath)
		if err != nil {
			return err
		}

		file, err := os.Open(filePath)
		if err != nil {
			return err
		}
		defer file.Close()

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(relPath)
		header.Method = method

		writer, err := zipWriter.CreateHeader(header)
		if err != nil {
			return err
		}

		_, err = io.Copy(writer, file)
		return err
	})
}
